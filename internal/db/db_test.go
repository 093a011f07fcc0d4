package db_test

import (
	"context"
	"testing"
	"time"

	"catalog-api/internal/db"
	"catalog-api/internal/models"
	"catalog-api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, store *db.DB, username string) *models.User {
	t.Helper()
	u := models.NewUser()
	u.Username = username
	u.Email = username + "@example.com"
	u.PasswordHash = "hash"
	require.NoError(t, store.CreateUser(context.Background(), u))
	return u
}

func newPlanet(t *testing.T, store *db.DB, name string) *models.Planet {
	t.Helper()
	p := &models.Planet{Name: name, Description: name + " desc", ImageURL: "https://img/" + name}
	require.NoError(t, store.CreatePlanet(context.Background(), p))
	return p
}

func newCharacter(t *testing.T, store *db.DB, name string, planetID int) *models.Character {
	t.Helper()
	c := &models.Character{Name: name, Description: "d", ImageURL: "u", PlanetID: &planetID}
	require.NoError(t, store.CreateCharacter(context.Background(), c))
	return c
}

func TestInitUnsupportedDriver(t *testing.T) {
	_, err := db.Init("mysql", "whatever")
	assert.Error(t, err)
}

func TestInitIsIdempotent(t *testing.T) {
	dsn := "file:init_idempotent?mode=memory&cache=shared&_foreign_keys=on"
	first, err := db.Init(db.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { first.Close() })
	newUser(t, first, "luke")

	// A second Init against the same database re-runs the bootstrap DDL.
	second, err := db.Init(db.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { second.Close() })

	var n int
	require.NoError(t, second.QueryRow("SELECT COUNT(*) FROM users").Scan(&n))
	assert.Equal(t, 1, n)
	assert.Equal(t, db.DriverSQLite, second.DriverName())
}

func TestUsers(t *testing.T) {
	store := testutil.OpenTestDB(t)
	ctx := context.Background()

	u := newUser(t, store, "luke")
	assert.NotZero(t, u.ID)
	assert.True(t, u.IsActive)
	assert.WithinDuration(t, time.Now().UTC(), u.CreatedAt, 5*time.Second)

	got, err := store.GetUserByUsername(ctx, "luke")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "luke@example.com", got.Email)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.True(t, got.IsActive)
	assert.WithinDuration(t, u.CreatedAt, got.CreatedAt, time.Millisecond)
	assert.Empty(t, got.Favorites.Planets)
	assert.NotNil(t, got.Favorites.Planets)
	assert.NotNil(t, got.Posts)

	byID, err := store.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "luke", byID.Username)

	_, err = store.GetUserByUsername(ctx, "vader")
	assert.ErrorIs(t, err, db.ErrNotFound)

	exists, err := store.UsernameExists(ctx, "luke")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = store.EmailExists(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateUserConflict(t *testing.T) {
	store := testutil.OpenTestDB(t)
	newUser(t, store, "luke")

	dup := models.NewUser()
	dup.Username = "luke"
	dup.Email = "other@example.com"
	dup.PasswordHash = "x"
	assert.ErrorIs(t, store.CreateUser(context.Background(), dup), db.ErrConflict)

	dup.Username = "leia"
	dup.Email = "luke@example.com"
	assert.ErrorIs(t, store.CreateUser(context.Background(), dup), db.ErrConflict)
}

func TestListUsersWithRelations(t *testing.T) {
	store := testutil.OpenTestDB(t)
	ctx := context.Background()

	luke := newUser(t, store, "luke")
	leia := newUser(t, store, "leia")
	tatooine := newPlanet(t, store, "Tatooine")
	yoda := newCharacter(t, store, "Yoda", tatooine.ID)

	_, err := store.AddFavorite(ctx, luke.ID, models.PlanetTarget{ID: tatooine.ID})
	require.NoError(t, err)
	_, err = store.AddFavorite(ctx, leia.ID, models.CharacterTarget{ID: yoda.ID})
	require.NoError(t, err)
	require.NoError(t, store.CreatePost(ctx, &models.Post{Title: "hi", Content: "there", UserID: leia.ID}))

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, "luke", users[0].Username)
	assert.Equal(t, []models.PlanetSlim{{ID: tatooine.ID, Name: "Tatooine"}}, users[0].Favorites.Planets)
	assert.Empty(t, users[0].Favorites.People)
	assert.Empty(t, users[0].Posts)

	assert.Equal(t, "leia", users[1].Username)
	assert.Equal(t, []models.CharacterSlim{{ID: yoda.ID, Name: "Yoda"}}, users[1].Favorites.People)
	require.Len(t, users[1].Posts, 1)
	assert.Equal(t, "hi", users[1].Posts[0].Title)
}

func TestListUsersEmpty(t *testing.T) {
	store := testutil.OpenTestDB(t)
	users, err := store.ListUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestPlanets(t *testing.T) {
	store := testutil.OpenTestDB(t)
	ctx := context.Background()

	hoth := newPlanet(t, store, "Hoth")
	naboo := newPlanet(t, store, "Naboo")
	newCharacter(t, store, "Padme", naboo.ID)
	newCharacter(t, store, "Jar Jar", naboo.ID)

	got, err := store.GetPlanetByName(ctx, "Naboo")
	require.NoError(t, err)
	assert.Equal(t, naboo.ID, got.ID)
	assert.Equal(t, "Naboo desc", got.Description)
	require.Len(t, got.Characters, 2)
	assert.Equal(t, "Padme", got.Characters[0].Name)

	got, err = store.GetPlanetByID(ctx, hoth.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hoth", got.Name)
	assert.NotNil(t, got.Characters)
	assert.Empty(t, got.Characters)

	_, err = store.GetPlanetByName(ctx, "Alderaan")
	assert.ErrorIs(t, err, db.ErrNotFound)

	all, err := store.ListPlanets(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Empty(t, all[0].Characters)
	assert.Len(t, all[1].Characters, 2)

	slim, err := store.ListPlanetsSlim(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.PlanetSlim{{ID: hoth.ID, Name: "Hoth"}, {ID: naboo.ID, Name: "Naboo"}}, slim)

	exists, err := store.PlanetNameExists(ctx, "Hoth")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.ErrorIs(t, store.CreatePlanet(ctx, &models.Planet{Name: "Hoth"}), db.ErrConflict)
}

func TestCharacters(t *testing.T) {
	store := testutil.OpenTestDB(t)
	ctx := context.Background()

	endor := newPlanet(t, store, "Endor")
	wicket := newCharacter(t, store, "Wicket", endor.ID)

	got, err := store.GetCharacterByName(ctx, "Wicket")
	require.NoError(t, err)
	assert.Equal(t, wicket.ID, got.ID)
	require.NotNil(t, got.PlanetID)
	assert.Equal(t, endor.ID, *got.PlanetID)

	got, err = store.GetCharacterByID(ctx, wicket.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wicket", got.Name)

	_, err = store.GetCharacterByID(ctx, 999)
	assert.ErrorIs(t, err, db.ErrNotFound)

	all, err := store.ListCharacters(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	dup := &models.Character{Name: "Wicket", PlanetID: &endor.ID}
	assert.ErrorIs(t, store.CreateCharacter(ctx, dup), db.ErrConflict)

	missing := 404
	dangling := &models.Character{Name: "Ghost", PlanetID: &missing}
	assert.ErrorIs(t, store.CreateCharacter(ctx, dangling), db.ErrNotFound)
}

func TestFavorites(t *testing.T) {
	store := testutil.OpenTestDB(t)
	ctx := context.Background()

	luke := newUser(t, store, "luke")
	dagobah := newPlanet(t, store, "Dagobah")
	yoda := newCharacter(t, store, "Yoda", dagobah.ID)

	planet := models.PlanetTarget{ID: dagobah.ID}
	character := models.CharacterTarget{ID: yoda.ID}

	_, err := store.FindFavorite(ctx, luke.ID, planet)
	assert.ErrorIs(t, err, db.ErrNotFound)

	fav, err := store.AddFavorite(ctx, luke.ID, planet)
	require.NoError(t, err)
	assert.NotZero(t, fav.ID)

	found, err := store.FindFavorite(ctx, luke.ID, planet)
	require.NoError(t, err)
	assert.Equal(t, fav.ID, found.ID)

	// Same id as a character is a different favorite.
	_, err = store.FindFavorite(ctx, luke.ID, models.CharacterTarget{ID: dagobah.ID})
	assert.ErrorIs(t, err, db.ErrNotFound)

	_, err = store.AddFavorite(ctx, luke.ID, planet)
	assert.ErrorIs(t, err, db.ErrConflict)

	_, err = store.AddFavorite(ctx, luke.ID, character)
	require.NoError(t, err)

	user, err := store.GetUserByID(ctx, luke.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, user.Favorites.Len())

	require.NoError(t, store.DeleteFavorite(ctx, luke.ID, planet))
	assert.ErrorIs(t, store.DeleteFavorite(ctx, luke.ID, planet), db.ErrNotFound)

	user, err = store.GetUserByID(ctx, luke.ID)
	require.NoError(t, err)
	assert.Empty(t, user.Favorites.Planets)
	assert.Equal(t, []models.CharacterSlim{{ID: yoda.ID, Name: "Yoda"}}, user.Favorites.People)
}

func TestFavoriteRowsNeedExactlyOneTarget(t *testing.T) {
	store := testutil.OpenTestDB(t)
	luke := newUser(t, store, "luke")
	dagobah := newPlanet(t, store, "Dagobah")
	yoda := newCharacter(t, store, "Yoda", dagobah.ID)

	_, err := store.Exec("INSERT INTO favorites (user_id, planet_id, character_id) VALUES ($1, $2, $3)", luke.ID, dagobah.ID, yoda.ID)
	assert.Error(t, err)
	_, err = store.Exec("INSERT INTO favorites (user_id) VALUES ($1)", luke.ID)
	assert.Error(t, err)
}

func TestPosts(t *testing.T) {
	store := testutil.OpenTestDB(t)
	ctx := context.Background()

	luke := newUser(t, store, "luke")
	leia := newUser(t, store, "leia")

	first := &models.Post{Title: "one", Content: "a", UserID: luke.ID}
	require.NoError(t, store.CreatePost(ctx, first))
	assert.NotZero(t, first.ID)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)
	require.NoError(t, store.CreatePost(ctx, &models.Post{Title: "two", Content: "b", UserID: luke.ID}))
	require.NoError(t, store.CreatePost(ctx, &models.Post{Title: "other", Content: "c", UserID: leia.ID}))

	posts, err := store.ListPostsByUser(ctx, luke.ID)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "one", posts[0].Title)
	assert.Equal(t, "two", posts[1].Title)
	assert.Equal(t, luke.ID, posts[1].UserID)
	assert.WithinDuration(t, first.CreatedAt, posts[0].CreatedAt, time.Millisecond)

	none, err := store.ListPostsByUser(ctx, 999)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	err = store.CreatePost(ctx, &models.Post{Title: "x", Content: "y", UserID: 999})
	assert.ErrorIs(t, err, db.ErrNotFound)
}
