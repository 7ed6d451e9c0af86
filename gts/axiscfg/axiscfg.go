package axiscfg

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iwtcode/googolAdapter/models"
	"gopkg.in/yaml.v3"
)

// Значения "не задано" для параметров оси. Направление допускает только ±1.
const (
	unset    = -1
	unsetDir = -2
)

// Имена полей в порядке проверки.
const (
	FieldHomeMode       = "homeMode"
	FieldHomeDirection  = "homeDirection"
	FieldSearchDistance = "searchDistance"
	FieldHomeOffset     = "homeOffset"
	FieldEscapeStep     = "escapeStep"
	FieldPadFlag        = "padFlag"
)

// ErrConfigNotFound - файл параметров осей отсутствует.
var ErrConfigNotFound = errors.New("axis configuration file not found")

// ParseError - файл параметров осей поврежден.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to load axis configuration file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConfigMissingError - для оси нет записи в файле параметров.
type ConfigMissingError struct {
	CardID int16
	Axis   int
}

func (e *ConfigMissingError) Error() string {
	return fmt.Sprintf("home configuration for axis %d of card %d not found", e.Axis, e.CardID)
}

// ConfigInvalidError - параметр оси не задан или вне диапазона.
type ConfigInvalidError struct {
	Field  string
	CardID int16
	Axis   int
}

func (e *ConfigInvalidError) Error() string {
	return fmt.Sprintf("card %d: axis %d parameter %s is out of range", e.CardID, e.Axis, e.Field)
}

// File - структура файла параметров осей (Gts800_AxisCfg.json).
type File struct {
	CardAxisCfgs []CardAxisCfg `json:"CardAxisCfgs" yaml:"CardAxisCfgs"`
}

// CardAxisCfg - параметры осей одной платы.
type CardAxisCfg struct {
	CardID   int       `json:"CardId" yaml:"CardId"`
	AxisCfgs []AxisCfg `json:"AxisCfgs" yaml:"AxisCfgs"`
}

// AxisCfg - сырая запись оси; незаданные поля хранят значения-маркеры.
type AxisCfg struct {
	AxisIndex          int `json:"AxisIndex" yaml:"AxisIndex"`
	HomeMode           int `json:"HomeMode" yaml:"HomeMode"`
	HomeDir            int `json:"HomeDir" yaml:"HomeDir"`
	SearchHomeDistance int `json:"SearchHomeDistance" yaml:"SearchHomeDistance"`
	HomeOffset         int `json:"HomeOffset" yaml:"HomeOffset"`
	EscapeStep         int `json:"EscapeStep" yaml:"EscapeStep"`
	Pad2_1             int `json:"Pad2_1" yaml:"Pad2_1"`
}

func defaultAxisCfg() AxisCfg {
	return AxisCfg{
		AxisIndex:          unset,
		HomeMode:           unset,
		HomeDir:            unsetDir,
		SearchHomeDistance: unset,
		HomeOffset:         unset,
		EscapeStep:         unset,
		Pad2_1:             unset,
	}
}

func (c *CardAxisCfg) UnmarshalJSON(data []byte) error {
	type plain CardAxisCfg
	p := plain{CardID: unset}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = CardAxisCfg(p)
	return nil
}

func (c *CardAxisCfg) UnmarshalYAML(node *yaml.Node) error {
	type plain CardAxisCfg
	p := plain{CardID: unset}
	if err := node.Decode(&p); err != nil {
		return err
	}
	*c = CardAxisCfg(p)
	return nil
}

func (a *AxisCfg) UnmarshalJSON(data []byte) error {
	type plain AxisCfg
	p := plain(defaultAxisCfg())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = AxisCfg(p)
	return nil
}

func (a *AxisCfg) UnmarshalYAML(node *yaml.Node) error {
	type plain AxisCfg
	p := plain(defaultAxisCfg())
	if err := node.Decode(&p); err != nil {
		return err
	}
	*a = AxisCfg(p)
	return nil
}

// Validate проверяет поля в фиксированном порядке и сообщает о первом неверном.
func (a AxisCfg) Validate(card int16) error {
	var field string
	switch {
	case a.HomeMode == unset:
		field = FieldHomeMode
	case a.HomeDir != -1 && a.HomeDir != 1:
		field = FieldHomeDirection
	case a.SearchHomeDistance == unset:
		field = FieldSearchDistance
	case a.HomeOffset == unset:
		field = FieldHomeOffset
	case a.EscapeStep == unset:
		field = FieldEscapeStep
	case a.Pad2_1 == unset:
		field = FieldPadFlag
	default:
		return nil
	}
	return &ConfigInvalidError{Field: field, CardID: card, Axis: a.AxisIndex}
}

type key struct {
	card int16
	axis int
}

type entry struct {
	cfg models.AxisHomeConfig
	err error
}

// Store - неизменяемый набор параметров поиска нуля, проверенных при загрузке.
// Безопасен для одновременного чтения из нескольких горутин.
type Store struct {
	path    string
	entries map[key]entry
}

// Empty возвращает пустой набор: любой поиск нуля завершится ConfigMissingError.
func Empty() *Store {
	return &Store{entries: map[key]entry{}}
}

// Load читает файл параметров. Формат определяется по расширению: .yaml/.yml - YAML, иначе JSON.
// Отсутствующий файл дает ErrConfigNotFound, поврежденный - *ParseError.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, &ParseError{Path: path, Err: err}
	}

	var file File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		err = json.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	s := New(file)
	s.path = path
	return s, nil
}

// New строит набор из уже разобранной структуры.
// При повторе пары (плата, ось) используется первая запись.
func New(file File) *Store {
	s := Empty()
	for _, card := range file.CardAxisCfgs {
		cardID := int16(card.CardID)
		for _, ax := range card.AxisCfgs {
			k := key{card: cardID, axis: ax.AxisIndex}
			if _, dup := s.entries[k]; dup {
				continue
			}
			e := entry{err: ax.Validate(cardID)}
			if e.err == nil {
				e.cfg = models.AxisHomeConfig{
					CardID:             cardID,
					AxisIndex:          ax.AxisIndex,
					HomeMode:           ax.HomeMode,
					HomeDirection:      ax.HomeDir,
					SearchHomeDistance: ax.SearchHomeDistance,
					HomeOffset:         ax.HomeOffset,
					EscapeStep:         ax.EscapeStep,
					ReverseAtOrigin:    ax.Pad2_1,
				}
			}
			s.entries[k] = e
		}
	}
	return s
}

// Path возвращает путь, из которого был загружен набор.
func (s *Store) Path() string {
	return s.path
}

// Len - число записей осей, включая неверные.
func (s *Store) Len() int {
	return len(s.entries)
}

// Lookup возвращает параметры оси или ConfigMissingError / ConfigInvalidError.
func (s *Store) Lookup(card int16, axis int) (models.AxisHomeConfig, error) {
	e, ok := s.entries[key{card: card, axis: axis}]
	if !ok {
		return models.AxisHomeConfig{}, &ConfigMissingError{CardID: card, Axis: axis}
	}
	return e.cfg, e.err
}

// Axes возвращает отсортированные номера осей, описанных для платы.
func (s *Store) Axes(card int16) []int {
	axes := make([]int, 0)
	for k := range s.entries {
		if k.card == card {
			axes = append(axes, k.axis)
		}
	}
	sort.Ints(axes)
	return axes
}

// Validate возвращает первую ошибку проверки по возрастанию (плата, ось).
func (s *Store) Validate() error {
	keys := make([]key, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].card != keys[j].card {
			return keys[i].card < keys[j].card
		}
		return keys[i].axis < keys[j].axis
	})
	for _, k := range keys {
		if err := s.entries[k].err; err != nil {
			return err
		}
	}
	return nil
}
