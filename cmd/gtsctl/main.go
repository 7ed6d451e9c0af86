// Команда gtsctl по шагам проверяет плату GTS: инициализация, чтение
// состояния и ввода-вывода, поиск нуля и пробные перемещения одной оси.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"

	googol "github.com/iwtcode/googolAdapter"
	"github.com/iwtcode/googolAdapter/gts"
	"github.com/iwtcode/googolAdapter/models"
	"github.com/joho/godotenv"
)

// runStep выполняет шаг и завершает программу при первой ошибке.
func runStep(name string, fn func() error) {
	log.Printf("--- Запуск шага: %s ---", name)

	if err := fn(); err != nil {
		log.Fatalf("Ошибка выполнения на шаге %s: %v", name, err)
	}

	log.Printf("--- Шаг %s выполнен успешно ---", name)
	fmt.Println("==================================================")
}

func main() {
	axis := flag.Int("axis", 1, "номер оси (1..8)")
	hiSpeed := flag.Float64("home-speed", 20, "скорость поиска нуля")
	speed := flag.Float64("speed", 2, "скорость перемещения")
	distance := flag.Float64("distance", 1000, "расстояние пробного перемещения")
	skipMotion := flag.Bool("no-motion", false, "только чтение, без движения осей")
	flag.Parse()

	// 1) Загрузка конфигурации
	if err := godotenv.Load("./.env"); err != nil {
		log.Printf("Warning: Could not load .env file. Using default values or environment variables: %v", err)
	}
	cfg := googol.Load()
	log.Printf("Конфигурация загружена: card=%d, backend=%s, cfg=%s, axisCfg=%s",
		cfg.CardID, cfg.Backend, cfg.ConfigFile, cfg.AxisConfigFile)

	// 2) Открытие и инициализация платы
	client, err := googol.New(cfg)
	if err != nil {
		log.Fatalf("Ошибка инициализации платы: %v", err)
	}
	defer client.Close()

	snapshots, cancel := client.Subscribe(1024)
	defer cancel()

	runStep("Info", func() error {
		printAsJSON("ControllerInfo", client.Info())
		return nil
	})

	runStep("UpdateStatusAll", func() error {
		if err := client.UpdateStatusAll(); err != nil {
			return err
		}
		printSnapshots(snapshots)
		return nil
	})

	runStep("ReadDigitalIO", func() error {
		inputs, err := client.ReadDigitalInputs()
		if err != nil {
			return err
		}
		outputs, err := client.ReadDigitalOutputs()
		if err != nil {
			return err
		}
		printAsJSON("DigitalIO", map[string][]bool{"inputs": inputs, "outputs": outputs})
		return nil
	})

	runStep("ReadAnalogIO", func() error {
		ai, err := client.ReadAnalogInput(0)
		if err != nil {
			return err
		}
		ao, err := client.ReadAnalogOutputs()
		if err != nil {
			return err
		}
		printAsJSON("AnalogIO", map[string]interface{}{"ai0": ai, "outputs": ao})
		return nil
	})

	if *skipMotion {
		log.Println("Проверка завершена без движения осей.")
		return
	}

	runStep("Home", func() error {
		if err := client.Home(*axis, *hiSpeed, 1); err != nil {
			return err
		}
		printSnapshots(snapshots)
		return nil
	})

	runStep("Move", func() error {
		if err := client.Move(*axis, *speed, *distance); err != nil {
			return err
		}
		printSnapshots(snapshots)
		return nil
	})

	runStep("MoveAbs", func() error {
		if err := client.MoveAbs(*axis, *speed, 0); err != nil {
			return err
		}
		printSnapshots(snapshots)
		return nil
	})

	log.Println("Проверка платы завершена.")
}

// printSnapshots выводит последний накопленный снимок каждой оси.
func printSnapshots(ch <-chan models.AxisStatusSnapshot) {
	latest := map[int]models.AxisStatusSnapshot{}
	for {
		select {
		case s := <-ch:
			latest[s.Axis] = s
		default:
			for axis := 1; axis <= gts.AxisCount; axis++ {
				if s, ok := latest[axis]; ok {
					printAsJSON(fmt.Sprintf("Axis%d", axis), s)
				}
			}
			return
		}
	}
}

// printAsJSON форматирует данные в JSON и выводит в лог
func printAsJSON(name string, data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Printf("Ошибка маршалинга JSON для %s: %v", name, err)
		return
	}
	fmt.Printf("--- %s ---\n%s\n", name, string(jsonData))
}
