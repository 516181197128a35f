package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/userhub/account-service/internal/core/domain"
	"github.com/userhub/account-service/internal/core/ports"
)

const (
	collectionUsers    = "users"
	collectionCounters = "counters"

	// defaultLimit bounds an unpaginated listing.
	defaultLimit = 100
)

// UserRepository persists user records in MongoDB. The credential lives as a
// subdocument of the user, so every paired User+Credential write is a
// single-document operation and therefore atomic. Numeric ids are allocated
// from the counters collection.
type UserRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		col:      db.Collection(collectionUsers),
		counters: db.Collection(collectionCounters),
	}
}

type credentialDoc struct {
	Hash      string `bson:"hash"`
	UpdatedAt int64  `bson:"updated_at"`
}

type userDoc struct {
	ID             int64          `bson:"_id"`
	Name           string         `bson:"name,omitempty"`
	Email          string         `bson:"email,omitempty"`
	Admin          bool           `bson:"is_admin"`
	EmailConfirmed bool           `bson:"email_confirmed"`
	Credential     *credentialDoc `bson:"credentials,omitempty"`
	CreatedAt      int64          `bson:"created_at"`
	UpdatedAt      int64          `bson:"updated_at"`
}

// activeFilter matches a record only while it has not been soft-deleted.
func activeFilter(id int64) bson.M {
	return bson.M{"_id": id, "name": bson.M{"$ne": domain.DeletedUserName}}
}

// nextID allocates the next user id from the counters collection.
func (r *UserRepository) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": collectionUsers},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("allocate user id: %w", err)
	}
	return counter.Seq, nil
}

// Create inserts the user together with its embedded credential.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.nextID(ctx)
	if err != nil {
		return nil, err
	}

	doc := toDoc(user)
	doc.ID = id

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return fromDoc(doc), nil
}

// FindByID retrieves a record by id; the credential is projected away unless
// explicitly requested.
func (r *UserRepository) FindByID(ctx context.Context, id int64, includeCredential bool) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne()
	if !includeCredential {
		opts.SetProjection(bson.M{"credentials": 0})
	}

	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return fromDoc(&doc), nil
}

// FindByEmail retrieves a record by email, credential included. Soft-deleted
// records hold no email and can never match.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return fromDoc(&doc), nil
}

// Find returns records matching the filter, sorted by id for stable pages.
func (r *UserRepository) Find(ctx context.Context, filter ports.UserFilter) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if len(filter.IDs) > 0 {
		query["_id"] = bson.M{"$in": filter.IDs}
	}
	if filter.Name != "" {
		query["name"] = bson.M{"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(filter.Name)}}
	}
	if filter.Email != "" {
		query["email"] = filter.Email
	}
	if !filter.UpdatedSince.IsZero() {
		query["updated_at"] = bson.M{"$gte": filter.UpdatedSince.Unix()}
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(filter.Offset).
		SetLimit(limit)
	if !filter.IncludeCredentials {
		opts.SetProjection(bson.M{"credentials": 0})
	}

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]domain.User, 0, len(docs))
	for i := range docs {
		users = append(users, *fromDoc(&docs[i]))
	}
	return users, nil
}

// Update applies a partial update to a non-soft-deleted record, rotating the
// embedded credential in the same write when a new hash is supplied.
func (r *UserRepository) Update(ctx context.Context, id int64, changes ports.UserChanges) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC().Unix()
	set := bson.M{"updated_at": now}
	if changes.Name != nil {
		set["name"] = *changes.Name
	}
	if changes.Email != nil {
		set["email"] = *changes.Email
	}
	if changes.EmailConfirmed != nil {
		set["email_confirmed"] = *changes.EmailConfirmed
	}
	if changes.CredentialHash != nil {
		set["credentials.hash"] = *changes.CredentialHash
		set["credentials.updated_at"] = now
	}

	var doc userDoc
	err := r.col.FindOneAndUpdate(ctx,
		activeFilter(id),
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After).SetProjection(bson.M{"credentials": 0}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return fromDoc(&doc), nil
}

// SoftDelete marks the record unusable: sentinel name, no email, no
// credential. Already soft-deleted records no longer match the filter.
func (r *UserRepository) SoftDelete(ctx context.Context, id int64) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	err := r.col.FindOneAndUpdate(ctx,
		activeFilter(id),
		bson.M{
			"$set":   bson.M{"name": domain.DeletedUserName, "updated_at": time.Now().UTC().Unix()},
			"$unset": bson.M{"email": "", "credentials": ""},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("soft-delete user: %w", err)
	}
	return fromDoc(&doc), nil
}

// HardDelete removes the record for good and returns the pre-delete snapshot.
func (r *UserRepository) HardDelete(ctx context.Context, id int64) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("hard-delete user: %w", err)
	}
	return fromDoc(&doc), nil
}

// EnsureIndexes creates the indexes the directory depends on. The unique
// sparse index on email enforces uniqueness among non-deleted users only,
// since soft delete unsets the field.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{Keys: bson.D{{Key: "updated_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func toDoc(u *domain.User) *userDoc {
	doc := &userDoc{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Admin:          u.Admin,
		EmailConfirmed: u.EmailConfirmed,
		CreatedAt:      u.CreatedAt.Unix(),
		UpdatedAt:      u.UpdatedAt.Unix(),
	}
	if u.Credential != nil {
		doc.Credential = &credentialDoc{
			Hash:      u.Credential.Hash,
			UpdatedAt: u.Credential.UpdatedAt.Unix(),
		}
	}
	return doc
}

func fromDoc(doc *userDoc) *domain.User {
	user := &domain.User{
		ID:             doc.ID,
		Name:           doc.Name,
		Email:          doc.Email,
		Admin:          doc.Admin,
		EmailConfirmed: doc.EmailConfirmed,
		CreatedAt:      unixToTime(doc.CreatedAt),
		UpdatedAt:      unixToTime(doc.UpdatedAt),
	}
	if doc.Credential != nil {
		user.Credential = &domain.Credential{
			Hash:      doc.Credential.Hash,
			UpdatedAt: unixToTime(doc.Credential.UpdatedAt),
		}
	}
	return user
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
