package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnshRaj112/jurnal-backend/internal/models"
)

const (
	journalsCollection  = "journals"
	summariesCollection = "journal_summaries"
	weeklyCollection    = "weekly_summaries"
	profilesCollection  = "profiles"
	usersCollection     = "users"
)

// Mongo is the Store backed by a MongoDB database. Usernames are expected to be
// normalised to lower case before they reach it.
type Mongo struct {
	db *mongo.Database
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

// EnsureIndexes creates the unique and lookup indexes the queries rely on.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	specs := map[string][]mongo.IndexModel{
		journalsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		weeklyCollection: {
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "week_start", Value: 1}, {Key: "week_end", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("user_week_unique"),
			},
		},
		usersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for coll, idx := range specs {
		if _, err := m.db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return err
		}
	}
	return nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.db.Client().Ping(ctx, nil)
}

func (m *Mongo) CreateEntry(ctx context.Context, e *models.JournalEntry) error {
	doc := *e
	doc.CreatedAt = doc.CreatedAt.UTC()
	_, err := m.db.Collection(journalsCollection).InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrConflict
	}
	return err
}

func (m *Mongo) GetEntry(ctx context.Context, userID, entryID string) (*models.JournalEntry, error) {
	var e models.JournalEntry
	err := m.db.Collection(journalsCollection).
		FindOne(ctx, bson.M{"_id": entryID, "user_id": userID}).
		Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	e.CreatedAt = e.CreatedAt.UTC()
	return &e, nil
}

func (m *Mongo) findEntries(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.JournalEntry, error) {
	cursor, err := m.db.Collection(journalsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.JournalEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].CreatedAt = entries[i].CreatedAt.UTC()
	}
	return entries, nil
}

func (m *Mongo) ListEntries(ctx context.Context, userID string, limit, skip int) ([]models.EntryWithSummary, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}
	if skip > 0 {
		findOptions.SetSkip(int64(skip))
	}

	entries, err := m.findEntries(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}

	out := make([]models.EntryWithSummary, 0, len(entries))
	if len(entries) == 0 {
		return out, nil
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	cursor, err := m.db.Collection(summariesCollection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var summaries []models.EntrySummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	byEntry := make(map[string]*models.EntrySummary, len(summaries))
	for i := range summaries {
		summaries[i].CreatedAt = summaries[i].CreatedAt.UTC()
		byEntry[summaries[i].EntryID] = &summaries[i]
	}

	for _, e := range entries {
		out = append(out, models.EntryWithSummary{JournalEntry: e, Summary: byEntry[e.ID]})
	}
	return out, nil
}

func (m *Mongo) CountEntries(ctx context.Context, userID string) (int64, error) {
	return m.db.Collection(journalsCollection).CountDocuments(ctx, bson.M{"user_id": userID})
}

func (m *Mongo) ListEntriesBetween(ctx context.Context, userID string, from, to time.Time) ([]models.JournalEntry, error) {
	filter := bson.M{
		"user_id":    userID,
		"created_at": bson.M{"$gte": from.UTC(), "$lt": to.UTC()},
	}
	return m.findEntries(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

func (m *Mongo) ListEntryIDs(ctx context.Context, userID string) ([]string, error) {
	entries, err := m.findEntries(ctx, bson.M{"user_id": userID}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids, nil
}

func (m *Mongo) DeleteEntries(ctx context.Context, userID string) (int64, error) {
	res, err := m.db.Collection(journalsCollection).DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (m *Mongo) UpsertEntrySummary(ctx context.Context, s *models.EntrySummary) error {
	doc := *s
	doc.CreatedAt = doc.CreatedAt.UTC()
	_, err := m.db.Collection(summariesCollection).ReplaceOne(ctx,
		bson.M{"_id": s.EntryID}, doc, options.Replace().SetUpsert(true))
	return err
}

func (m *Mongo) DeleteEntrySummaries(ctx context.Context, entryIDs []string) (int64, error) {
	if len(entryIDs) == 0 {
		return 0, nil
	}
	res, err := m.db.Collection(summariesCollection).DeleteMany(ctx, bson.M{"_id": bson.M{"$in": entryIDs}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (m *Mongo) GetWeeklyRecap(ctx context.Context, userID, weekStart, weekEnd string) (*models.WeeklyRecap, error) {
	var r models.WeeklyRecap
	err := m.db.Collection(weeklyCollection).FindOne(ctx, bson.M{
		"user_id":    userID,
		"week_start": weekStart,
		"week_end":   weekEnd,
	}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	r.CreatedAt = r.CreatedAt.UTC()
	return &r, nil
}

func (m *Mongo) InsertWeeklyRecap(ctx context.Context, r *models.WeeklyRecap) (bool, error) {
	doc := *r
	doc.CreatedAt = doc.CreatedAt.UTC()
	_, err := m.db.Collection(weeklyCollection).InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (m *Mongo) ListWeeklyRecaps(ctx context.Context, userID string, limit int) ([]models.WeeklyRecap, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "week_start", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}
	cursor, err := m.db.Collection(weeklyCollection).Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []models.WeeklyRecap{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].CreatedAt = out[i].CreatedAt.UTC()
	}
	return out, nil
}

func (m *Mongo) DeleteWeeklyRecaps(ctx context.Context, userID string) (int64, error) {
	res, err := m.db.Collection(weeklyCollection).DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (m *Mongo) UpsertProfile(ctx context.Context, p *models.Profile) error {
	_, err := m.db.Collection(profilesCollection).UpdateOne(ctx,
		bson.M{"_id": p.UserID},
		bson.M{
			"$set": bson.M{
				"display_name": p.DisplayName,
				"locale":       p.Locale,
				"updated_at":   p.UpdatedAt.UTC(),
			},
			"$setOnInsert": bson.M{"created_at": p.UpdatedAt.UTC()},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (m *Mongo) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	err := m.db.Collection(profilesCollection).FindOne(ctx, bson.M{"_id": userID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *Mongo) DeleteProfile(ctx context.Context, userID string) error {
	_, err := m.db.Collection(profilesCollection).DeleteOne(ctx, bson.M{"_id": userID})
	return err
}

func (m *Mongo) CreateUser(ctx context.Context, u *models.User) error {
	doc := *u
	doc.CreatedAt = doc.CreatedAt.UTC()
	_, err := m.db.Collection(usersCollection).InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrConflict
	}
	return err
}

func (m *Mongo) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	err := m.db.Collection(usersCollection).FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (m *Mongo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.findUser(ctx, bson.M{"username": username})
}

func (m *Mongo) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return m.findUser(ctx, bson.M{"_id": userID})
}

func (m *Mongo) DeleteUser(ctx context.Context, userID string) error {
	res, err := m.db.Collection(usersCollection).DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
