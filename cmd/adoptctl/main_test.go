package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/adoptme/service-adoption/internal/application"
	"github.com/adoptme/service-adoption/internal/handler"
	"github.com/adoptme/service-adoption/internal/platform/auth"
	"github.com/adoptme/service-adoption/internal/platform/health"
	"github.com/adoptme/service-adoption/internal/platform/kafka"
	"github.com/adoptme/service-adoption/internal/repository/memory"
	"github.com/adoptme/service-adoption/pkg/session"
)

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	pub := kafka.NopPublisher{}
	jwt := auth.NewJWTManager("adoptctl-test-secret", 15*time.Minute, time.Hour)

	users := memory.NewUserRepo()
	pets := memory.NewPetRepo()
	shelters := memory.NewShelterRepo()
	accounts := application.NewAccountService(users, jwt, log)
	petSvc := application.NewPetService(pets, pub, log)
	contact := application.NewContactService(memory.NewContactMessageRepo(), memory.NewContactInfoRepo(), pub, log)
	donations := application.NewDonationService(memory.NewDonationRepo(), users, shelters, pub, log, false)

	router := handler.NewRouter(handler.Services{
		Accounts:  accounts,
		Pets:      petSvc,
		Shelters:  application.NewShelterService(shelters, petSvc, log),
		Contact:   contact,
		Donations: donations,
		Adoptions: application.NewAdoptionService(memory.NewAdoptionRepo(pets), pets, pub, log),
		Favorites: application.NewFavoriteService(memory.NewFavoriteRepo(), pets, log),
		Admin:     application.NewAdminService(accounts, petSvc, contact, donations),
	}, jwt, health.NewHandler(nil, "service-adoption"), log, nil)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

type cli struct {
	t     *testing.T
	api   string
	state string
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	var out, errOut bytes.Buffer
	err := run(append([]string{"--api-url", c.api + "/api/v1", "--state", c.state}, args...), &out, &errOut)
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "adoptctl %v", args)
	return out
}

var listedID = regexp.MustCompile(`\(id ([0-9a-f-]{36})\)`)

func TestCLI_EndToEnd(t *testing.T) {
	srv := newAPI(t)
	c := &cli{t: t, api: srv.URL, state: filepath.Join(t.TempDir(), "session.db")}

	assert.Equal(t, "service-adoption: ok\n", c.mustRun("health"))
	assert.Equal(t, "Not signed in.\n", c.mustRun("whoami"))

	_, err := c.run("pets", "create", "--name", "Bruno", "--province", "bagmati", "--district", "Kathmandu", "--city", "Baneshwor")
	assert.ErrorIs(t, err, session.ErrAuthRequired)

	assert.Equal(t, "Welcome, Ram Thapa!\n",
		c.mustRun("register", "--name", "Ram Thapa", "--email", "ram@example.com", "--password", "password123"))
	assert.Equal(t, "Ram Thapa <ram@example.com>\n", c.mustRun("whoami"), "session persists between runs")

	out := c.mustRun("pets", "create", "--name", "Bruno", "--type", "dog", "--breed", "Labrador",
		"--province", "bagmati", "--district", "Kathmandu", "--city", "Baneshwor")
	m := listedID.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	brunoID := m[1]

	c.mustRun("pets", "create", "--name", "Mimi", "--type", "cat",
		"--province", "gandaki", "--district", "Kaski", "--city", "Pokhara")

	out = c.mustRun("pets", "list")
	assert.Contains(t, out, "Bruno")
	assert.Contains(t, out, "Mimi")

	out = c.mustRun("pets", "list", "--type", "CAT", "--facets")
	assert.NotContains(t, out, "Bruno")
	assert.Contains(t, out, "Mimi")
	assert.Regexp(t, `Types: +(cat, dog|dog, cat)`, out)

	out = c.mustRun("pets", "list", "--search", "pokhara")
	assert.Contains(t, out, "Mimi")
	assert.NotContains(t, out, "Bruno")

	assert.Equal(t, "No pets match your search.\n", c.mustRun("pets", "list", "--search", "zebra"))

	out = c.mustRun("pets", "show", brunoID)
	assert.Contains(t, out, "Baneshwor, Kathmandu, Bagmati Province")

	_, err = c.run("pets", "show", "00000000-0000-0000-0000-000000000001")
	assert.EqualError(t, err, "pet 00000000-0000-0000-0000-000000000001 was not found")

	assert.Equal(t, "Bruno added to your wishlist!\n", c.mustRun("wishlist", "add", brunoID))
	assert.Equal(t, "Bruno is already in your wishlist.\n", c.mustRun("wishlist", "add", brunoID))
	assert.Contains(t, c.mustRun("pets", "show", brunoID), "This pet is in your wishlist.")

	assert.Equal(t, "Signed out.\n", c.mustRun("logout"))
	assert.Contains(t, c.mustRun("wishlist"), "Bruno", "wishlist survives logout")

	_, err = c.run("missing", "report", "--name", "Kali", "--province", "bagmati",
		"--district", "Lalitpur", "--city", "Patan", "--last-seen", "Mangal Bazaar")
	assert.ErrorIs(t, err, session.ErrAuthRequired)

	assert.Equal(t, "Welcome back, Ram Thapa!\n",
		c.mustRun("login", "--email", "ram@example.com", "--password", "password123"))

	_, err = c.run("missing", "report", "--name", "Kali", "--province", "bagmati",
		"--district", "Lalitpur", "--city", "Patan", "--last-seen", "Mangal Bazaar", "--last-seen-date", "yesterday")
	assert.EqualError(t, err, "--last-seen-date must be YYYY-MM-DD")

	out = c.mustRun("missing", "report", "--name", "Kali", "--province", "bagmati",
		"--district", "Lalitpur", "--city", "Patan", "--last-seen", "Mangal Bazaar", "--reward", "50")
	assert.Contains(t, out, "Missing report filed for Kali")

	out = c.mustRun("missing", "list")
	assert.Contains(t, out, "Kali")
	assert.NotContains(t, out, "Bruno")

	assert.Equal(t, "Pet removed from your wishlist.\n", c.mustRun("wishlist", "remove", brunoID))
	assert.Equal(t, "Your wishlist is empty.\n", c.mustRun("wishlist"))
}

func TestCLI_LoginFailures(t *testing.T) {
	srv := newAPI(t)
	c := &cli{t: t, api: srv.URL, state: ":memory:"}

	c.mustRun("register", "--name", "Sita", "--email", "sita@example.com", "--password", "password123")

	_, err := c.run("register", "--name", "Sita", "--email", "sita@example.com", "--password", "password123")
	assert.EqualError(t, err, "an account with this email already exists")

	_, err = c.run("login", "--email", "sita@example.com", "--password", "wrong-password")
	assert.EqualError(t, err, "invalid email or password")
}

func TestCLI_Contact(t *testing.T) {
	srv := newAPI(t)
	c := &cli{t: t, api: srv.URL, state: ":memory:"}

	out := c.mustRun("contact", "info")
	assert.Contains(t, out, "AdoptAPet Nepal")
	assert.Contains(t, out, "info@adoptapet.np")

	out = c.mustRun("contact", "send", "--name", "Gita", "--email", "gita@example.com", "-m", "Do you have rabbits?")
	assert.Contains(t, out, "We will get back to you soon.")
}

func TestCLI_APIUnreachable(t *testing.T) {
	srv := newAPI(t)
	url := srv.URL
	srv.Close()

	c := &cli{t: t, api: url, state: ":memory:"}
	_, err := c.run("health")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API unreachable")
}

func TestCLI_ExpiredAccessTokenIsRefreshed(t *testing.T) {
	srv := newAPI(t)
	c := &cli{t: t, api: srv.URL, state: filepath.Join(t.TempDir(), "session.db")}
	c.mustRun("register", "--name", "Ram Thapa", "--email", "ram@example.com", "--password", "password123")

	setState := func(values map[string]string) {
		store, err := session.OpenSQLiteStore(c.state)
		require.NoError(t, err)
		defer store.Close()
		for k, v := range values {
			require.NoError(t, store.Set(context.Background(), k, v))
		}
	}

	setState(map[string]string{session.KeyToken: "expired-access-token"})
	out := c.mustRun("pets", "create", "--name", "Bruno", "--type", "dog",
		"--province", "bagmati", "--district", "Kathmandu", "--city", "Baneshwor")
	assert.Contains(t, out, "Bruno is now listed for adoption")
	assert.Equal(t, "Ram Thapa <ram@example.com>\n", c.mustRun("whoami"))

	setState(map[string]string{session.KeyToken: "expired-access-token", session.KeyRefreshToken: "revoked"})
	_, err := c.run("pets", "create", "--name", "Mimi", "--type", "cat",
		"--province", "gandaki", "--district", "Kaski", "--city", "Pokhara")
	assert.ErrorIs(t, err, session.ErrSessionExpired)
	assert.Equal(t, "Not signed in.\n", c.mustRun("whoami"))
}
