// Package settings stores one serial terminal configuration per serial port
// and guarantees that every stored record is complete, in range and unique
// by port.
//
// # Basic Usage
//
// A Repository validates and persists records through a Store:
//
//	store, err := sqlstore.Open("/var/lib/serial-settings/settings.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	repo := settings.NewRepository(store)
//	defer repo.Close()
//
//	s, err := repo.Create(ctx, settings.Setting{
//	    Port:        "/dev/ttyUSB0",
//	    BaudRate:    9600,
//	    DataBits:    8,
//	    StopBits:    settings.StopBitsOne,
//	    Parity:      settings.ParityNone,
//	    FlowControl: settings.FlowControlNone,
//	})
//
// NewMemoryStore returns a Store that keeps records in memory, for tests and
// short-lived programs.
//
// # Validation
//
// Validate reports every out-of-domain field at once:
//
//	if err := settings.Validate(s); err != nil {
//	    var verr *settings.ValidationError
//	    errors.As(err, &verr)
//	    for _, fe := range verr.Fields {
//	        fmt.Println(fe)
//	    }
//	}
//
// Baud rates must be one of StandardBaudRates unless the Repository is given
// a Validator built with NewValidator and extra speeds.
//
// # Error Handling
//
// Every Repository error matches exactly one of ErrInvalidSetting,
// ErrDuplicatePort, ErrNotFound or ErrStorage with errors.Is, and carries
// detail in *ValidationError, *DuplicatePortError, *NotFoundError or
// *StorageError for errors.As. Looking up a missing record is not an error:
//
//	s, found, err := repo.GetByPort(ctx, "/dev/ttyUSB0")
//
// # Port Discovery
//
// ListPorts enumerates the serial devices attached to a Linux host. Prune
// removes the records of ports that are no longer attached:
//
//	ports, err := settings.ListPorts()
//	removed, err := repo.Prune(ctx, ports)
//
// # Default Configuration
//
// DefaultSetting returns 115200 8N1 with no flow control.
package settings
