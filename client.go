package googol

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/iwtcode/googolAdapter/gts"
	"github.com/iwtcode/googolAdapter/gts/model"
	"github.com/iwtcode/googolAdapter/gts/native"
	"github.com/iwtcode/googolAdapter/gts/sim"
	"github.com/iwtcode/googolAdapter/models"
	"github.com/sirupsen/logrus"
)

// Client является основной точкой входа для работы с платой GTS.
// Все операции драйвера доступны через встроенный *gts.Controller.
type Client struct {
	*gts.Controller
	config      *Config
	logger      *logrus.Logger
	broadcaster *gts.Broadcaster
}

// ErrUnknownBackend - GTS_BACKEND не равен ни sim, ни native.
var ErrUnknownBackend = errors.New("unknown GTS backend")

// New создает клиент, выбирает backend по cfg.Backend и инициализирует плату.
func New(cfg *Config, opts ...gts.Option) (*Client, error) {
	var (
		port model.CommandPort
		err  error
	)
	switch cfg.Backend {
	case BackendNative:
		port, err = native.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create native backend: %w", err)
		}
	case BackendSim, "":
		card := sim.New()
		card.SetCallLogSize(0)
		port = card
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
	return NewWithPort(cfg, port, opts...)
}

// NewWithPort создает клиент поверх готового CommandPort.
func NewWithPort(cfg *Config, port model.CommandPort, opts ...gts.Option) (*Client, error) {
	logger := newLogger(cfg.LogLevel)
	broadcaster := gts.NewBroadcaster()

	all := append([]gts.Option{
		gts.WithLogger(logger),
		gts.WithObserver(broadcaster),
		gts.WithConfigFiles(cfg.resolve(cfg.ConfigFile), cfg.resolve(cfg.AxisConfigFile)),
	}, opts...)
	ctrl := gts.NewController(cfg.CardID, port, all...)

	if err := ctrl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize card %d: %w", cfg.CardID, err)
	}

	return &Client{
		Controller:  ctrl,
		config:      cfg,
		logger:      logger,
		broadcaster: broadcaster,
	}, nil
}

func newLogger(levelName string) *logrus.Logger {
	logger := logrus.New()

	if levelName == "off" || levelName == "none" {
		logger.SetOutput(io.Discard)
	} else {
		level, err := logrus.ParseLevel(levelName)
		if err != nil {
			level = logrus.InfoLevel
		}
		logger.SetLevel(level)
		logger.SetOutput(os.Stdout)
	}

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		ForceColors:     true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger
}

// GetLogger возвращает используемый логгер.
func (c *Client) GetLogger() *logrus.Logger {
	return c.logger
}

// Config возвращает конфигурацию, с которой создан клиент.
func (c *Client) Config() *Config {
	return c.config
}

// Subscribe подписывает на снимки состояния осей.
func (c *Client) Subscribe(buffer int) (<-chan models.AxisStatusSnapshot, func()) {
	return c.broadcaster.Subscribe(buffer)
}

// SubscribePhases подписывает на смену этапов движения.
func (c *Client) SubscribePhases(buffer int) (<-chan gts.PhaseEvent, func()) {
	return c.broadcaster.SubscribePhases(buffer)
}
