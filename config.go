package googol

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/iwtcode/googolAdapter/gts"
)

// Варианты GTS_BACKEND.
const (
	BackendSim    = "sim"
	BackendNative = "native"
)

// Config хранит модель конфигурации библиотеки
type Config struct {
	CardID         int16
	Backend        string
	ConfigDir      string
	ConfigFile     string
	AxisConfigFile string
	LogLevel       string
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	cardStr := os.Getenv("GTS_CARD_ID")
	card, err := strconv.ParseInt(cardStr, 10, 16)
	if err != nil || card < 0 {
		card = 0
	}

	backend := strings.ToLower(strings.TrimSpace(os.Getenv("GTS_BACKEND")))
	if backend == "" {
		backend = BackendSim
	}

	configFile := os.Getenv("GTS_CONFIG_FILE")
	if configFile == "" {
		configFile = gts.DefaultConfigFile
	}
	axisConfigFile := os.Getenv("GTS_AXIS_CONFIG_FILE")
	if axisConfigFile == "" {
		axisConfigFile = gts.DefaultAxisConfigFile
	}
	// Старый формат: оба файла в одной строке через запятую.
	if files := os.Getenv("GTS_CONFIG_FILES"); files != "" {
		configFile, axisConfigFile = ParseConfigFiles(files)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		CardID:         int16(card),
		Backend:        backend,
		ConfigDir:      os.Getenv("GTS_CONFIG_DIR"),
		ConfigFile:     configFile,
		AxisConfigFile: axisConfigFile,
		LogLevel:       logLevel,
	}
}

// ParseConfigFiles разбирает строку вида "gts800.cfg,Gts800_AxisCfg.json".
// Пропущенные части заменяются именами по умолчанию.
func ParseConfigFiles(s string) (configFile, axisConfigFile string) {
	configFile, axisConfigFile = gts.DefaultConfigFile, gts.DefaultAxisConfigFile
	parts := strings.SplitN(s, ",", 2)
	if v := strings.TrimSpace(parts[0]); v != "" {
		configFile = v
	}
	if len(parts) == 2 {
		if v := strings.TrimSpace(parts[1]); v != "" {
			axisConfigFile = v
		}
	}
	return configFile, axisConfigFile
}

// resolve возвращает полный путь к файлу относительно ConfigDir
// (по умолчанию - каталог исполняемого файла).
func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	dir := c.ConfigDir
	if dir == "" {
		if exe, err := os.Executable(); err == nil {
			dir = filepath.Dir(exe)
		}
	}
	return filepath.Join(dir, name)
}
