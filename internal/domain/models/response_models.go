package models

import "github.com/iwtcode/googolAdapter/models"

// ErrorResponse представляет стандартный ответ с ошибкой.
type ErrorResponse struct {
	Status string `json:"status" example:"error"`
	Error  struct {
		Code    int    `json:"code" example:"404"`
		Message string `json:"message" example:"home configuration for axis 3 of card 0 not found"`
	} `json:"error"`
}

// MessageResponse представляет стандартный успешный ответ с сообщением.
type MessageResponse struct {
	Status  string `json:"status" example:"ok"`
	Message string `json:"message" example:"Polling started successfully"`
}

// OperationResponse представляет ответ с одной операцией.
type OperationResponse struct {
	Status    string     `json:"status" example:"ok"`
	Operation *Operation `json:"operation"`
}

// OperationsResponse представляет ответ со списком операций.
type OperationsResponse struct {
	Status     string       `json:"status" example:"ok"`
	Count      int          `json:"count" example:"2"`
	Operations []*Operation `json:"operations"`
}

// ControllerInfoResponse представляет ответ с возможностями платы.
type ControllerInfoResponse struct {
	Status     string                `json:"status" example:"ok"`
	Controller models.ControllerInfo `json:"controller"`
	Polling    bool                  `json:"polling"`
	Clients    int                   `json:"stream_clients"`
}

// DigitalResponse представляет состояние дискретного канала.
type DigitalResponse struct {
	Status string `json:"status" example:"ok"`
	Port   int    `json:"port" example:"3"`
	On     bool   `json:"on" example:"true"`
}

// DigitalBankResponse представляет состояние всех дискретных каналов.
type DigitalBankResponse struct {
	Status string `json:"status" example:"ok"`
	Ports  []bool `json:"ports"`
}

// AnalogResponse представляет значение аналогового канала.
type AnalogResponse struct {
	Status string  `json:"status" example:"ok"`
	Port   int     `json:"port" example:"0"`
	Value  float64 `json:"value" example:"2.5"`
}
