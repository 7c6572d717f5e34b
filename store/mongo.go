package store

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/models"
)

type MongoReportStore struct {
	collection *mongo.Collection
}

func NewMongoReportStore(collection *mongo.Collection) *MongoReportStore {
	return &MongoReportStore{collection: collection}
}

func (s *MongoReportStore) Insert(ctx context.Context, r *models.Report) error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	_, err := s.collection.InsertOne(ctx, r)
	return err
}

func (s *MongoReportStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Report, error) {
	var report models.Report
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func reportQuery(f ReportFilter) bson.M {
	query := bson.M{}
	if f.User != nil {
		query["user"] = *f.User
	}
	if f.Status != "" {
		query["status"] = f.Status
	}
	if len(f.AccommodationNames) > 0 {
		query["accommodationName"] = bson.M{"$in": f.AccommodationNames}
	}
	return query
}

func (s *MongoReportStore) Find(ctx context.Context, f ReportFilter) ([]models.Report, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.collection.Find(ctx, reportQuery(f), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var reports []models.Report
	for cursor.Next(ctx) {
		var report models.Report
		if err := cursor.Decode(&report); err != nil {
			continue
		}
		reports = append(reports, report)
	}
	return reports, cursor.Err()
}

func (s *MongoReportStore) FindPage(ctx context.Context, f ReportFilter, page, limit int) ([]models.Report, int64, error) {
	query := reportQuery(f)
	total, err := s.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	skip := (page - 1) * limit
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cursor, err := s.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)
	var reports []models.Report
	for cursor.Next(ctx) {
		var report models.Report
		if err := cursor.Decode(&report); err != nil {
			continue
		}
		reports = append(reports, report)
	}
	return reports, total, cursor.Err()
}

func (s *MongoReportStore) Save(ctx context.Context, r *models.Report) error {
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": r.ID}, r)
	return err
}

func (s *MongoReportStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *MongoReportStore) CountByStatus(ctx context.Context) (map[string]int, error) {
	cursor, err := s.collection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	counts := make(map[string]int)
	for cursor.Next(ctx) {
		var bucket struct {
			Status string `bson:"_id"`
			Count  int    `bson:"count"`
		}
		if err := cursor.Decode(&bucket); err != nil {
			continue
		}
		counts[bucket.Status] = bucket.Count
	}
	return counts, cursor.Err()
}

func (s *MongoReportStore) IssueHistogram(ctx context.Context) ([]models.IssueCount, error) {
	cursor, err := s.collection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$issueType", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var histogram []models.IssueCount
	for cursor.Next(ctx) {
		var bucket models.IssueCount
		if err := cursor.Decode(&bucket); err != nil {
			continue
		}
		histogram = append(histogram, bucket)
	}
	return histogram, cursor.Err()
}

type MongoCounterReportStore struct {
	collection *mongo.Collection
}

func NewMongoCounterReportStore(collection *mongo.Collection) *MongoCounterReportStore {
	return &MongoCounterReportStore{collection: collection}
}

func (s *MongoCounterReportStore) Insert(ctx context.Context, cr *models.CounterReport) error {
	if cr.ID.IsZero() {
		cr.ID = primitive.NewObjectID()
	}
	_, err := s.collection.InsertOne(ctx, cr)
	return err
}

func (s *MongoCounterReportStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.CounterReport, error) {
	var counter models.CounterReport
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&counter)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &counter, nil
}

func (s *MongoCounterReportStore) FindByReport(ctx context.Context, reportID primitive.ObjectID) (*models.CounterReport, error) {
	var counter models.CounterReport
	err := s.collection.FindOne(ctx, bson.M{"originalReport": reportID}).Decode(&counter)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &counter, nil
}

func counterQuery(f CounterFilter) bson.M {
	query := bson.M{}
	if f.Owner != nil {
		query["owner"] = *f.Owner
	}
	if f.Status != "" {
		query["status"] = f.Status
	}
	return query
}

func (s *MongoCounterReportStore) Find(ctx context.Context, f CounterFilter) ([]models.CounterReport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.collection.Find(ctx, counterQuery(f), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var counters []models.CounterReport
	for cursor.Next(ctx) {
		var counter models.CounterReport
		if err := cursor.Decode(&counter); err != nil {
			continue
		}
		counters = append(counters, counter)
	}
	return counters, cursor.Err()
}

func (s *MongoCounterReportStore) Count(ctx context.Context, f CounterFilter) (int64, error) {
	return s.collection.CountDocuments(ctx, counterQuery(f))
}

func (s *MongoCounterReportStore) Save(ctx context.Context, cr *models.CounterReport) error {
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": cr.ID}, cr)
	return err
}

type MongoAccommodationStore struct {
	collection *mongo.Collection
}

func NewMongoAccommodationStore(collection *mongo.Collection) *MongoAccommodationStore {
	return &MongoAccommodationStore{collection: collection}
}

func (s *MongoAccommodationStore) Insert(ctx context.Context, a *models.Accommodation) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	_, err := s.collection.InsertOne(ctx, a)
	return err
}

func (s *MongoAccommodationStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Accommodation, error) {
	var accommodation models.Accommodation
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&accommodation)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &accommodation, nil
}

func (s *MongoAccommodationStore) Find(ctx context.Context, f AccommodationFilter) ([]models.Accommodation, error) {
	query := bson.M{}
	if f.Owner != nil {
		query["owner"] = *f.Owner
	}
	if f.City != "" {
		query["city"] = bson.M{"$regex": "^" + strings.TrimSpace(f.City) + "$", "$options": "i"}
	}
	if f.Search != "" {
		query["name"] = bson.M{"$regex": f.Search, "$options": "i"}
	}
	if f.MaxPrice > 0 {
		query["pricePerMonth"] = bson.M{"$lte": f.MaxPrice}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var accommodations []models.Accommodation
	for cursor.Next(ctx) {
		var accommodation models.Accommodation
		if err := cursor.Decode(&accommodation); err != nil {
			continue
		}
		accommodations = append(accommodations, accommodation)
	}
	return accommodations, cursor.Err()
}

func (s *MongoAccommodationStore) FindByName(ctx context.Context, name string) ([]models.Accommodation, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"name": name})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var accommodations []models.Accommodation
	for cursor.Next(ctx) {
		var accommodation models.Accommodation
		if err := cursor.Decode(&accommodation); err != nil {
			continue
		}
		accommodations = append(accommodations, accommodation)
	}
	return accommodations, cursor.Err()
}

func (s *MongoAccommodationStore) FindOneByNameAndOwner(ctx context.Context, name string, owner primitive.ObjectID) (*models.Accommodation, error) {
	var accommodation models.Accommodation
	err := s.collection.FindOne(ctx, bson.M{"name": name, "owner": owner}).Decode(&accommodation)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &accommodation, nil
}

func (s *MongoAccommodationStore) Save(ctx context.Context, a *models.Accommodation) error {
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	return err
}

func (s *MongoAccommodationStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

type MongoUserStore struct {
	collection *mongo.Collection
}

func NewMongoUserStore(collection *mongo.Collection) *MongoUserStore {
	return &MongoUserStore{collection: collection}
}

func (s *MongoUserStore) Insert(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	_, err := s.collection.InsertOne(ctx, u)
	return err
}

func (s *MongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) FindAll(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var users []models.User
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			continue
		}
		users = append(users, user)
	}
	return users, cursor.Err()
}

func (s *MongoUserStore) Save(ctx context.Context, u *models.User) error {
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	return err
}

func (s *MongoUserStore) Counts(ctx context.Context) (int, int, error) {
	total, err := s.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, 0, err
	}
	banned, err := s.collection.CountDocuments(ctx, bson.M{"isBanned": true})
	if err != nil {
		return 0, 0, err
	}
	return int(total), int(banned), nil
}
