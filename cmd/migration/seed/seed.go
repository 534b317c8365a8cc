package seed

import (
	"context"

	"globeswap/internal/controllers"
	. "globeswap/internal/models"

	authController "globeswap/internal/controllers/auth"
	listingController "globeswap/internal/controllers/listings"

	logger "github.com/Bparsons0904/goLogger"
)

const demoPassword = "globeswap-demo"

type demoListing struct {
	owner string
	form  listingController.ListingForm
}

var demoUsers = []string{"amara", "bruno", "chen"}

var demoListings = []demoListing{
	{
		owner: "amara",
		form: listingController.ListingForm{
			Destination:  "Lisbon",
			StartDate:    "2026-05-02",
			EndDate:      "2026-05-16",
			Description:  "Two weeks near Alfama, happy to cook.",
			ListingType:  string(ListingTypeSeek),
			OfferedSkill: "Portuguese cooking",
			DesiredSkill: "surf lessons",
		},
	},
	{
		owner: "bruno",
		form: listingController.ListingForm{
			Destination:  "Lisbon",
			StartDate:    "2026-05-01",
			EndDate:      "2026-06-01",
			Description:  "Spare room with a view of the river.",
			ListingType:  string(ListingTypeOffer),
			OfferedSkill: "help with my garden",
			DesiredSkill: "surf lessons",
		},
	},
	{
		owner: "chen",
		form: listingController.ListingForm{
			Destination:  "Kyoto",
			StartDate:    "2026-10-10",
			EndDate:      "2026-10-20",
			ListingType:  string(ListingTypeOffer),
			OfferedSkill: "English conversation",
			DesiredSkill: "tea ceremony",
		},
	},
}

func Seed(ctrls controllers.Controllers, log logger.Logger) error {
	log = log.Function("Seed")
	log.Info("Seeding development data")

	ctx := context.Background()
	users := make(map[string]*User, len(demoUsers))

	for _, username := range demoUsers {
		user, err := ctrls.Auth.Register(ctx, authController.RegisterRequest{
			Username:        username,
			Email:           username + "@example.com",
			Password:        demoPassword,
			ConfirmPassword: demoPassword,
		})
		if err != nil {
			return log.Err("failed to seed user", err, "username", username)
		}
		users[username] = user
	}

	trips := make([]*Trip, 0, len(demoListings))
	for _, listing := range demoListings {
		trip, err := ctrls.Listing.Create(ctx, users[listing.owner], listing.form)
		if err != nil {
			return log.Err("failed to seed listing", err, "owner", listing.owner)
		}
		trips = append(trips, trip)
	}

	// amara asks bruno for the Lisbon room
	if _, err := ctrls.Interaction.Create(
		ctx,
		users["amara"],
		trips[1].ID,
		"Would the room be free for my dates?",
	); err != nil {
		return log.Err("failed to seed interaction", err)
	}

	log.Info("Seeded development data", "users", len(users), "listings", len(trips))
	return nil
}
