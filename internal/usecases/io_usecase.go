package usecases

func (u *Usecase) SetDigitalOutput(port int, on bool) error {
	return u.ctrl().SetDigitalOutput(port, on)
}

func (u *Usecase) ReadDigitalOutput(port int) (bool, error) {
	return u.ctrl().ReadDigitalOutput(port)
}

func (u *Usecase) ReadDigitalOutputs() ([]bool, error) {
	return u.ctrl().ReadDigitalOutputs()
}

func (u *Usecase) ReadDigitalInput(port int) (bool, error) {
	return u.ctrl().ReadDigitalInput(port)
}

func (u *Usecase) ReadDigitalInputs() ([]bool, error) {
	return u.ctrl().ReadDigitalInputs()
}

func (u *Usecase) ReadAnalogInput(port int) (float64, error) {
	return u.ctrl().ReadAnalogInput(port)
}

func (u *Usecase) ReadAnalogOutput(port int) (float64, error) {
	return u.ctrl().ReadAnalogOutput(port)
}

func (u *Usecase) SetAnalogOutput(port int, value float64) error {
	return u.ctrl().SetAnalogOutput(port, value)
}
