package telemetry

import (
	"io"

	"github.com/pkg/errors"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

const (
	// SerialBaudRate is the baud rate (bits/s) of the telemetry logger's serial link.
	SerialBaudRate int = 115200
	// SerialDataBits is the data bit setting (bits/word) of the serial link.
	SerialDataBits int = 8
)

// SerialPort describes a serial port on the host.
type SerialPort struct {
	PortName  string
	Product   string
	IsUSB     bool
	VendorID  string
	ProductID string
}

// AvailablePorts returns all available serial ports on the current host.
func AvailablePorts() ([]SerialPort, error) {
	list, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, errors.Wrap(err, "listing serial ports")
	}

	ports := make([]SerialPort, len(list))
	for i, p := range list {
		ports[i] = SerialPort{
			PortName:  p.Name,
			Product:   p.Product,
			IsUSB:     p.IsUSB,
			VendorID:  p.VID,
			ProductID: p.PID,
		}
	}

	return ports, nil
}

// OpenSerial opens the serial port a telemetry logger streams CSV rows on.
// Reads block until data arrives, so the port is meant to be handed to
// NewCSVDecoder, which reads on its own goroutine.
func OpenSerial(portName string) (io.ReadWriteCloser, error) {
	sp, err := serial.Open(portName, &serial.Mode{
		BaudRate: SerialBaudRate,
		DataBits: SerialDataBits,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "opening serial port '%s'", portName)
	}

	// drop whatever partial row was buffered before we attached
	if err = sp.ResetInputBuffer(); err != nil {
		sp.Close()
		return nil, errors.Wrap(err, "resetting input buffer")
	}

	return sp, nil
}
