package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/config"
	"github.com/pageza/recipe-share/backend/internal/database"
	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/testhelpers"
)

func TestNewSQLite(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", DBPath: "file:" + t.TempDir() + "/recipes.db"}

	db, err := database.New(cfg)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	assert.NoError(t, database.HealthCheck(context.Background(), db))

	user := models.User{Username: "alice", Email: "alice@x.io", PasswordHash: "hash"}
	require.NoError(t, db.Create(&user).Error)

	dup := models.User{Username: "alice", Email: "other@x.io", PasswordHash: "hash"}
	assert.Error(t, db.Create(&dup).Error)
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := database.New(&config.Config{DBDriver: "mysql"})
	assert.Error(t, err)
}

func TestNewRedisClientRequiresConfig(t *testing.T) {
	_, err := database.NewRedisClient(&config.Config{})
	assert.Error(t, err)
}

func TestAutoMigratePostgres(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	require.NoError(t, database.AutoMigrate(db))

	user := models.User{Username: "bob", Email: "bob@x.io", PasswordHash: "hash"}
	require.NoError(t, db.Create(&user).Error)

	recipe := models.Recipe{
		Title:        "Soup",
		Ingredients:  models.StringArray{"water", "salt"},
		Instructions: "boil",
		Category:     models.CategoryDinner,
		UserID:       user.ID,
	}
	require.NoError(t, db.Create(&recipe).Error)

	var loaded models.Recipe
	require.NoError(t, db.First(&loaded, "id = ?", recipe.ID).Error)
	assert.Equal(t, models.StringArray{"water", "salt"}, loaded.Ingredients)
	assert.EqualValues(t, 1, loaded.Version)

	bad := models.Review{RecipeID: recipe.ID, UserID: user.ID, Rating: 11, Description: "x", Seq: 2}
	assert.Error(t, db.Create(&bad).Error)
}

func TestSQLMigrationsPostgres(t *testing.T) {
	db := testhelpers.StartPostgres(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	mg, err := database.NewMigrator(sqlDB)
	require.NoError(t, err)
	require.NoError(t, mg.Up())
	require.NoError(t, mg.Up(), "second run is a no-op")

	version, dirty, err := mg.Version()
	require.NoError(t, err)
	assert.EqualValues(t, 1, version)
	assert.False(t, dirty)

	user := models.User{Username: "carol", Email: "carol@x.io", PasswordHash: "hash"}
	require.NoError(t, db.Create(&user).Error)
	recipe := models.Recipe{
		Title:        "Stew",
		Ingredients:  models.StringArray{"beef"},
		Instructions: "simmer",
		Category:     models.CategoryDinner,
		UserID:       user.ID,
	}
	require.NoError(t, db.Create(&recipe).Error)

	fav := models.RecipeFavorite{UserID: user.ID, RecipeID: recipe.ID}
	require.NoError(t, db.Omit("User", "Recipe").Create(&fav).Error)
	again := models.RecipeFavorite{UserID: user.ID, RecipeID: recipe.ID}
	assert.ErrorIs(t, db.Omit("User", "Recipe").Create(&again).Error, gorm.ErrDuplicatedKey)

	require.NoError(t, db.Delete(&models.Recipe{}, "id = ?", recipe.ID).Error)
	var count int64
	require.NoError(t, db.Model(&models.RecipeFavorite{}).Count(&count).Error)
	assert.Zero(t, count, "favorites cascade with their recipe")

	require.NoError(t, mg.Down(1))
	assert.False(t, db.Migrator().HasTable("recipes"))
	assert.Error(t, mg.Down(0))
}
