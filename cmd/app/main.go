// @title GTS Motion Service API
// @version 1.0.0
// @description API для управления осями платы движения Googol GTS-800 и отправки состояния осей в Kafka.
// @host localhost:8082
// @BasePath /api/v1
package main

import "github.com/iwtcode/googolAdapter/internal/app"

func main() {
	// Создаем и запускаем новый экземпляр приложения fx
	app.New().Run()
}
