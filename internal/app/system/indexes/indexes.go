// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureOrganizations(ctx, db); err != nil {
		problems = append(problems, "organizations: "+err.Error())
	}
	if err := ensureTeams(ctx, db); err != nil {
		problems = append(problems, "teams: "+err.Error())
	}
	if err := ensureEvents(ctx, db); err != nil {
		problems = append(problems, "events: "+err.Error())
	}
	if err := ensureDonations(ctx, db); err != nil {
		problems = append(problems, "donations: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetName("email_ci_unique").SetUnique(true),
		},
	})
	return err
}

func ensureOrganizations(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("organizations").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("name_ci_unique").SetUnique(true),
		},
	})
	return err
}

func ensureTeams(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("teams").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "orgId", Value: 1}},
			Options: options.Index().SetName("orgId"),
		},
		{
			Keys:    bson.D{{Key: "orgId", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetName("orgId_name_unique").SetUnique(true),
		},
	})
	return err
}

func ensureEvents(ctx context.Context, db *mongo.Database) error {
	// removeEvent queries on (userId, date, title); the agenda load only
	// needs the userId prefix.
	_, err := db.Collection("events").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}, {Key: "title", Value: 1}},
			Options: options.Index().SetName("userId_date_title"),
		},
	})
	return err
}

func ensureDonations(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("donations").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "donationDate", Value: -1}},
			Options: options.Index().SetName("donationDate_desc"),
		},
	})
	return err
}
