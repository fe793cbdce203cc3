// Command seed fills a development database with demo users, recipes,
// reviews and favorites. Running it twice is safe: existing users are
// logged in instead of registered, and their recipes are left alone.
package main

import (
	"context"
	"flag"

	"github.com/pageza/recipe-share/backend/config"
	"github.com/pageza/recipe-share/backend/internal/database"
	"github.com/pageza/recipe-share/backend/internal/logging"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
)

const demoPassword = "testpassword123"

type demoUser struct {
	username string
	email    string
}

var demoUsers = []demoUser{
	{"johndoe", "john.doe@example.com"},
	{"janesmith", "jane.smith@example.com"},
	{"bobwilson", "bob.wilson@example.com"},
}

var demoRecipes = []types.RecipeFields{
	{
		Title:        "Overnight Oats",
		Ingredients:  []string{"1 cup rolled oats", "1 cup milk", "1 tbsp honey", "Berries"},
		Instructions: "Mix oats, milk and honey. Refrigerate overnight and top with berries.",
		Category:     "Breakfast",
		CookingTime:  5,
	},
	{
		Title:        "Tomato Soup",
		Ingredients:  []string{"6 tomatoes", "1 onion", "2 cups stock", "Salt"},
		Instructions: "Soften the onion, add tomatoes and stock, simmer 20 minutes and blend.",
		Category:     "Lunch",
		CookingTime:  30,
	},
	{
		Title:        "Garlic Butter Salmon",
		Ingredients:  []string{"2 salmon fillets", "3 cloves garlic", "2 tbsp butter", "Lemon"},
		Instructions: "Sear the salmon, baste with garlic butter and finish with lemon.",
		Category:     "Dinner",
		CookingTime:  20,
	},
	{
		Title:        "Chocolate Mug Cake",
		Ingredients:  []string{"4 tbsp flour", "2 tbsp cocoa", "3 tbsp sugar", "3 tbsp milk", "1 tbsp oil"},
		Instructions: "Whisk everything in a mug and microwave for 90 seconds.",
		Category:     "Dessert",
		CookingTime:  3,
	},
	{
		Title:        "Spiced Chickpeas",
		Ingredients:  []string{"1 can chickpeas", "1 tbsp olive oil", "1 tsp paprika"},
		Instructions: "Toss chickpeas with oil and paprika and roast until crisp.",
		Category:     "Snack",
		CookingTime:  35,
	},
}

func main() {
	migrate := flag.Bool("migrate", true, "Create the schema from the models before seeding")
	flag.Parse()

	logging.Init(logging.Config{Level: "info", Format: "console"})
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	if cfg.Environment == config.Production {
		logging.Fatal().Msg("refusing to seed a production database")
	}

	db, err := database.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	if *migrate {
		if err := database.AutoMigrate(db); err != nil {
			logging.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL)
	recipes := service.NewRecipeService(db, nil, nil)
	reviews := service.NewReviewService(db, nil)
	favorites := service.NewFavoriteService(db)

	var users []types.UserSummary
	for _, u := range demoUsers {
		resp, err := auth.Register(ctx, u.username, u.email, demoPassword)
		if service.KindOf(err) == service.KindConflict {
			resp, err = auth.Login(ctx, u.email, demoPassword)
		}
		if err != nil {
			logging.Fatal().Err(err).Str("username", u.username).Msg("failed to seed user")
		}
		users = append(users, resp.User)
	}

	existing, err := recipes.ListUserRecipes(ctx, users[0].ID)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to list recipes")
	}
	if len(existing) > 0 {
		logging.Info().Int("recipes", len(existing)).Msg("demo recipes already present, nothing to do")
		return
	}

	for i, fields := range demoRecipes {
		owner := users[i%len(users)]
		recipe, err := recipes.CreateRecipe(ctx, owner.ID, fields, nil)
		if err != nil {
			logging.Fatal().Err(err).Str("title", fields.Title).Msg("failed to seed recipe")
		}

		reviewer := users[(i+1)%len(users)]
		withReview, err := reviews.AddReview(ctx, reviewer.ID, recipe.ID, 6+i%5, "Made this last week, turned out great.")
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to seed review")
		}
		if _, err := reviews.AddReply(ctx, owner.ID, recipe.ID, withReview.Reviews[0].ID, "Thanks for trying it!"); err != nil {
			logging.Fatal().Err(err).Msg("failed to seed reply")
		}
		if err := favorites.AddFavorite(ctx, reviewer.ID, recipe.ID); err != nil {
			logging.Fatal().Err(err).Msg("failed to seed favorite")
		}
		logging.Info().Str("title", recipe.Title).Str("owner", owner.Username).Msg("seeded recipe")
	}

	logging.Info().Int("users", len(users)).Int("recipes", len(demoRecipes)).Msg("seeding complete")
}
