package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/shakyaa89/MoneyTracker/internal/model"
)

const singletonKey = "singleton"

// Storage documents mirror the wire model with string money fields, since
// decimal values have no native bson representation.

type accountDoc struct {
	ID      string `bson:"id"`
	Name    string `bson:"name"`
	Type    string `bson:"type"`
	Balance string `bson:"balance"`
}

type transactionDoc struct {
	ID          string `bson:"id"`
	Date        string `bson:"date"`
	Type        string `bson:"type"`
	Amount      string `bson:"amount"`
	CategoryID  string `bson:"categoryId,omitempty"`
	AccountID   string `bson:"accountId"`
	ToAccountID string `bson:"toAccountId,omitempty"`
	Note        string `bson:"note"`
	IsRecurring bool   `bson:"isRecurring,omitempty"`
}

type categoryDoc struct {
	ID   string `bson:"id"`
	Name string `bson:"name"`
	Type string `bson:"type"`
	Icon string `bson:"icon,omitempty"`
}

type ledgerDoc struct {
	Key          string           `bson:"key"`
	Accounts     []accountDoc     `bson:"accounts"`
	Transactions []transactionDoc `bson:"transactions"`
	Categories   []categoryDoc    `bson:"categories"`
}

// MongoRepository stores the singleton ledger document in a MongoDB
// collection, replacing all three collections wholesale on every write.
type MongoRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoRepository creates a repository over the "finance" collection of the
// given database.
func NewMongoRepository(client *mongo.Client, database string) *MongoRepository {
	return &MongoRepository{
		client: client,
		coll:   client.Database(database).Collection("finance"),
	}
}

// Get implements Repository.
func (r *MongoRepository) Get(ctx context.Context) (model.Ledger, bool, error) {
	var doc ledgerDoc
	err := r.coll.FindOne(ctx, bson.M{"key": singletonKey}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Ledger{}, false, nil
	}
	if err != nil {
		return model.Ledger{}, false, fmt.Errorf("loading ledger document: %w", err)
	}
	l, err := fromDoc(doc)
	if err != nil {
		return model.Ledger{}, false, err
	}
	return l, true, nil
}

// Replace implements Repository.
func (r *MongoRepository) Replace(ctx context.Context, l model.Ledger) (model.Ledger, error) {
	doc := toDoc(l)
	update := bson.M{"$set": bson.M{
		"accounts":     doc.Accounts,
		"transactions": doc.Transactions,
		"categories":   doc.Categories,
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored ledgerDoc
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"key": singletonKey}, update, opts).Decode(&stored)
	if err != nil {
		return model.Ledger{}, fmt.Errorf("replacing ledger document: %w", err)
	}
	return fromDoc(stored)
}

// Ping implements Repository.
func (r *MongoRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

func toDoc(l model.Ledger) ledgerDoc {
	doc := ledgerDoc{
		Key:          singletonKey,
		Accounts:     make([]accountDoc, len(l.Accounts)),
		Transactions: make([]transactionDoc, len(l.Transactions)),
		Categories:   make([]categoryDoc, len(l.Categories)),
	}
	for i, a := range l.Accounts {
		doc.Accounts[i] = accountDoc{
			ID: a.ID, Name: a.Name, Type: string(a.Type), Balance: a.Balance.String(),
		}
	}
	for i, t := range l.Transactions {
		doc.Transactions[i] = transactionDoc{
			ID: t.ID, Date: t.Date, Type: string(t.Type), Amount: t.Amount.String(),
			CategoryID: t.CategoryID, AccountID: t.AccountID, ToAccountID: t.ToAccountID,
			Note: t.Note, IsRecurring: t.IsRecurring,
		}
	}
	for i, c := range l.Categories {
		doc.Categories[i] = categoryDoc{ID: c.ID, Name: c.Name, Type: string(c.Type), Icon: c.Icon}
	}
	return doc
}

func fromDoc(doc ledgerDoc) (model.Ledger, error) {
	l := model.Ledger{
		Accounts:     make([]model.Account, len(doc.Accounts)),
		Transactions: make([]model.Transaction, len(doc.Transactions)),
		Categories:   make([]model.Category, len(doc.Categories)),
	}
	for i, a := range doc.Accounts {
		balance, err := decimal.NewFromString(a.Balance)
		if err != nil {
			return model.Ledger{}, fmt.Errorf("account %s: parsing balance %q: %w", a.ID, a.Balance, err)
		}
		l.Accounts[i] = model.Account{
			ID: a.ID, Name: a.Name, Type: model.AccountType(a.Type), Balance: balance,
		}
	}
	for i, t := range doc.Transactions {
		amount, err := decimal.NewFromString(t.Amount)
		if err != nil {
			return model.Ledger{}, fmt.Errorf("transaction %s: parsing amount %q: %w", t.ID, t.Amount, err)
		}
		l.Transactions[i] = model.Transaction{
			ID: t.ID, Date: t.Date, Type: model.TransactionType(t.Type), Amount: amount,
			CategoryID: t.CategoryID, AccountID: t.AccountID, ToAccountID: t.ToAccountID,
			Note: t.Note, IsRecurring: t.IsRecurring,
		}
	}
	for i, c := range doc.Categories {
		l.Categories[i] = model.Category{ID: c.ID, Name: c.Name, Type: model.CategoryType(c.Type), Icon: c.Icon}
	}
	return l, nil
}
