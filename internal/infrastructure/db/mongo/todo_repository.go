package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cfo-web/finance-gateway/internal/core/domain"
)

const collectionTodos = "todos"

// TodoRepository persists the per-user to-do widget in MongoDB.
type TodoRepository struct {
	col *mongo.Collection
}

func NewTodoRepository(db *mongo.Database) *TodoRepository {
	return &TodoRepository{col: db.Collection(collectionTodos)}
}

type todoDoc struct {
	ID        string `bson:"_id"`
	UserID    string `bson:"user_id"`
	Text      string `bson:"text"`
	Checked   bool   `bson:"checked"`
	Position  int    `bson:"position"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

func toDoc(item *domain.TodoItem) todoDoc {
	return todoDoc{
		ID:        item.ID,
		UserID:    item.UserID,
		Text:      item.Text,
		Checked:   item.Checked,
		Position:  item.Position,
		CreatedAt: item.CreatedAt.Unix(),
		UpdatedAt: item.UpdatedAt.Unix(),
	}
}

func fromDoc(doc todoDoc) domain.TodoItem {
	return domain.TodoItem{
		ID:        doc.ID,
		UserID:    doc.UserID,
		Text:      doc.Text,
		Checked:   doc.Checked,
		Position:  doc.Position,
		CreatedAt: time.Unix(doc.CreatedAt, 0).UTC(),
		UpdatedAt: time.Unix(doc.UpdatedAt, 0).UTC(),
	}
}

// List returns the user's items ordered by position.
func (r *TodoRepository) List(ctx context.Context, userID string) ([]domain.TodoItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []todoDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	items := make([]domain.TodoItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, fromDoc(doc))
	}
	return items, nil
}

func (r *TodoRepository) Insert(ctx context.Context, item *domain.TodoItem) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, toDoc(item))
	return err
}

func (r *TodoRepository) Update(ctx context.Context, item *domain.TodoItem) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": item.ID, "user_id": item.UserID}
	res, err := r.col.ReplaceOne(ctx, filter, toDoc(item))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (r *TodoRepository) FindByID(ctx context.Context, userID, id string) (*domain.TodoItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc todoDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, err
	}
	item := fromDoc(doc)
	return &item, nil
}

func (r *TodoRepository) Delete(ctx context.Context, userID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

// SetPositions rewrites the position of each id in order, using one bulk
// write so a reorder lands as a unit.
func (r *TodoRepository) SetPositions(ctx context.Context, userID string, orderedIDs []string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	models := make([]mongo.WriteModel, 0, len(orderedIDs))
	for pos, id := range orderedIDs {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": id, "user_id": userID}).
			SetUpdate(bson.M{"$set": bson.M{"position": pos}}))
	}
	if len(models) == 0 {
		return nil
	}

	_, err := r.col.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true))
	return err
}

// EnsureIndexes creates the indexes the todo queries rely on.
func (r *TodoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "position", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
