package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	googol "github.com/iwtcode/googolAdapter"
	"github.com/iwtcode/googolAdapter/gts"
	"github.com/iwtcode/googolAdapter/gts/sim"
	"github.com/iwtcode/googolAdapter/internal/adapters/handlers"
	"github.com/iwtcode/googolAdapter/internal/config"
	"github.com/iwtcode/googolAdapter/internal/domain/models"
	"github.com/iwtcode/googolAdapter/internal/middleware/logging"
	"github.com/iwtcode/googolAdapter/internal/services/kafka"
	"github.com/iwtcode/googolAdapter/internal/services/motion_service"
	"github.com/iwtcode/googolAdapter/internal/usecases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const axisConfig = `{"CardAxisCfgs": [{"CardId": 0, "AxisCfgs": [
	{"AxisIndex": 1, "HomeMode": 1, "HomeDir": 1, "SearchHomeDistance": 20000, "HomeOffset": 0, "EscapeStep": 1000, "Pad2_1": 0}
]}]}`

func setupRouter(t *testing.T) (http.Handler, *sim.Card) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, gts.DefaultConfigFile), []byte("; gts\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, gts.DefaultAxisConfigFile), []byte(axisConfig), 0o644))

	ctrlCfg := &googol.Config{
		Backend:        googol.BackendSim,
		ConfigDir:      dir,
		ConfigFile:     gts.DefaultConfigFile,
		AxisConfigFile: gts.DefaultAxisConfigFile,
		LogLevel:       "off",
	}
	card := sim.New()
	client, err := googol.NewWithPort(ctrlCfg, card, gts.WithSleep(func(time.Duration) {}))
	require.NoError(t, err)
	t.Cleanup(client.Close)

	appCfg := &config.AppConfig{GinMode: gin.TestMode, Controller: ctrlCfg}
	producer, err := kafka.NewKafkaProducer(appCfg)
	require.NoError(t, err)

	logger := logging.NewLogger(&logging.Config{Enabled: false, Level: "INFO"}, "TEST")
	svc := motion_service.NewMotionService(client, producer, logger)
	t.Cleanup(svc.Shutdown)

	h := handlers.NewHandler(usecases.NewUsecases(svc), logger)
	return handlers.ProvideRouter(h, appCfg), card
}

func do(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Status string `json:"status"`
	Error  struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func waitOperation(t *testing.T, router http.Handler, id string) *models.Operation {
	t.Helper()
	var resp models.OperationResponse
	require.Eventually(t, func() bool {
		w := do(t, router, http.MethodGet, "/api/v1/operations/"+id, nil)
		if w.Code != http.StatusOK {
			return false
		}
		decode(t, w, &resp)
		return resp.Operation.Done()
	}, 2*time.Second, 5*time.Millisecond)
	return resp.Operation
}

func TestHomeThenMoveAbs(t *testing.T) {
	router, card := setupRouter(t)

	w := do(t, router, http.MethodPost, "/api/v1/axes/1/home", models.HomeRequest{HiSpeed: 20})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	var accepted models.OperationResponse
	decode(t, w, &accepted)
	assert.Equal(t, models.OperationHome, accepted.Operation.Kind)
	assert.Equal(t, models.OperationSucceeded, waitOperation(t, router, accepted.Operation.ID).Status)

	w = do(t, router, http.MethodPost, "/api/v1/axes/1/move-abs", models.MoveAbsRequest{Speed: 2, Position: 250})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	decode(t, w, &accepted)
	assert.Equal(t, models.OperationSucceeded, waitOperation(t, router, accepted.Operation.ID).Status)

	pos, _ := card.GetAxisEncPos(0, 1)
	assert.Equal(t, 250.0, pos)
}

func TestHomeWithoutAxisConfigFails(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(t, router, http.MethodPost, "/api/v1/axes/2/home", models.HomeRequest{HiSpeed: 20})
	require.Equal(t, http.StatusAccepted, w.Code)
	var accepted models.OperationResponse
	decode(t, w, &accepted)

	op := waitOperation(t, router, accepted.Operation.ID)
	assert.Equal(t, models.OperationFailed, op.Status)
	assert.Contains(t, op.Error, "home configuration for axis 2 of card 0 not found")
}

func TestMoveValidation(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(t, router, http.MethodPost, "/api/v1/axes/1/move", map[string]interface{}{"distance": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodPost, "/api/v1/axes/x/move", models.MoveRequest{Speed: 1, Distance: 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodPost, "/api/v1/axes/9/move", models.MoveRequest{Speed: 1, Distance: 10})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body errorBody
	decode(t, w, &body)
	assert.Equal(t, "error", body.Status)
	assert.Contains(t, body.Error.Message, "axis 9 is out of range [1..8]")

	w = do(t, router, http.MethodPost, "/api/v1/axes/1/move-abs", models.MoveAbsRequest{Speed: 1, Position: 1e10})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	decode(t, w, &body)
	assert.Contains(t, body.Error.Message, "position 1e+10 is out of range")

	w = do(t, router, http.MethodPost, "/api/v1/axes/1/move", models.MoveRequest{Speed: 1, Distance: -3e9})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestMoveFaultReportsAxisFault(t *testing.T) {
	router, card := setupRouter(t)
	card.InjectFault(0, 1, 0x20)

	w := do(t, router, http.MethodPost, "/api/v1/axes/1/move", models.MoveRequest{Speed: 1, Distance: 10})
	require.Equal(t, http.StatusAccepted, w.Code)
	var accepted models.OperationResponse
	decode(t, w, &accepted)

	op := waitOperation(t, router, accepted.Operation.ID)
	assert.Equal(t, models.OperationFailed, op.Status)
	assert.Contains(t, op.Error, "positive limit")
}

func TestOperationNotFound(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(t, router, http.MethodGet, "/api/v1/operations/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodGet, "/api/v1/operations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list models.OperationsResponse
	decode(t, w, &list)
	assert.Zero(t, list.Count)
}

func TestServoAndReset(t *testing.T) {
	router, card := setupRouter(t)

	w := do(t, router, http.MethodPost, "/api/v1/axes/2/servo", map[string]bool{"on": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, card.ServoOn(0, 2))

	w = do(t, router, http.MethodPost, "/api/v1/axes/2/servo", map[string]bool{"on": false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, card.ServoOn(0, 2))

	w = do(t, router, http.MethodPost, "/api/v1/axes/2/servo", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	card.SetResult("GT_ClrSts", 1)
	w = do(t, router, http.MethodPost, "/api/v1/axes/2/reset", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestProfile(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(t, router, http.MethodPost, "/api/v1/axes/1/profile", map[string]float64{"acceleration": 0.5})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, router, http.MethodPost, "/api/v1/axes/1/profile", map[string]float64{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDigitalIO(t *testing.T) {
	router, card := setupRouter(t)

	w := do(t, router, http.MethodPost, "/api/v1/io/do/3", map[string]bool{"on": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, router, http.MethodGet, "/api/v1/io/do/3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var digital models.DigitalResponse
	decode(t, w, &digital)
	assert.True(t, digital.On)

	w = do(t, router, http.MethodGet, "/api/v1/io/do", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bank models.DigitalBankResponse
	decode(t, w, &bank)
	require.Len(t, bank.Ports, gts.MaxDigitalOutputChannels)
	assert.True(t, bank.Ports[3])
	assert.False(t, bank.Ports[4])

	// Активный уровень - низкий: бит 0 означает "включен".
	card.SetDigitalInputs(0, ^int32(1<<5))
	w = do(t, router, http.MethodGet, "/api/v1/io/di/5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &digital)
	assert.True(t, digital.On)

	w = do(t, router, http.MethodGet, "/api/v1/io/di/16", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalogIO(t *testing.T) {
	router, card := setupRouter(t)
	card.SetAnalogInput(0, 2, 1.25)

	w := do(t, router, http.MethodGet, "/api/v1/io/ai/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var analog models.AnalogResponse
	decode(t, w, &analog)
	assert.Equal(t, 1.25, analog.Value)

	w = do(t, router, http.MethodPost, "/api/v1/io/ao/0", map[string]float64{"value": 300.7})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &analog)
	assert.Equal(t, 300.0, analog.Value)

	w = do(t, router, http.MethodPost, "/api/v1/io/ao/0", map[string]float64{"value": 40000})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = do(t, router, http.MethodGet, "/api/v1/io/ao/1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPollingRoutes(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(t, router, http.MethodPost, "/api/v1/polling/stop", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, router, http.MethodPost, "/api/v1/polling/start", models.PollingRequest{Interval: 50})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, router, http.MethodPost, "/api/v1/polling/start", models.PollingRequest{Interval: 50})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, router, http.MethodGet, "/api/v1/controller", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var info models.ControllerInfoResponse
	decode(t, w, &info)
	assert.True(t, info.Polling)
	assert.Equal(t, gts.AxisCount, info.Controller.AxisCount)

	w = do(t, router, http.MethodPost, "/api/v1/polling/stop", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStopAll(t *testing.T) {
	router, card := setupRouter(t)

	w := do(t, router, http.MethodPost, "/api/v1/stop", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, card.Commands(), "GT_Stop")
}
