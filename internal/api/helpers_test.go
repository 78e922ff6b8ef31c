package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"room-reservation-backend/config"
	"room-reservation-backend/internal/db"
	"room-reservation-backend/internal/model"
	"room-reservation-backend/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{
			RateLimitPerSec:  1000,
			RateLimitBurst:   1000,
			CacheTTLSeconds:  60,
			CORSAllowOrigins: []string{"*"},
		},
		Database: config.DatabaseConfig{Driver: "sqlite", DSN: "unused"},
		Schedule: config.ScheduleConfig{
			StartWindow: config.WindowConfig{Start: "09:00", End: "12:00", StepMinutes: 30},
			EndWindow:   config.WindowConfig{Start: "09:30", End: "12:30", StepMinutes: 30},
			Timezone:    "Asia/Tokyo",
		},
		Rooms: []config.RoomConfig{
			{ID: "S/応接室", Label: "サヱグサビル 応接室"},
			{ID: "N/会議スペース", Label: "並木ビル 会議スペース"},
		},
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	dsn := "file:" + regexp.MustCompile(`\W`).ReplaceAllString(t.Name(), "_") + "?mode=memory&cache=shared"
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(testDB))
	sqlDB, _ := testDB.DB()
	t.Cleanup(func() { sqlDB.Close() })

	s := store.NewGormStore(testDB)
	require.NoError(t, s.UpsertRooms(context.Background(), []model.Room{
		{ID: "S/応接室", Building: "S", Name: "応接室", Label: "サヱグサビル 応接室"},
		{ID: "N/会議スペース", Building: "N", Name: "会議スペース", Label: "並木ビル 会議スペース"},
	}))
	return s
}

func newTestRouter(t *testing.T, opts *webpush.Options) (*gin.Engine, store.Store) {
	t.Helper()
	s := newTestStore(t)
	return NewRouter(s, testConfig(t), opts, nil), s
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
