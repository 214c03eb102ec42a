package main

import (
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/obdevboot/jboot/host/pipeline"
)

// defaultVendorID, defaultProductID, defaultVendorString and
// defaultProductString are the bootloader's compile-time USB identity
// (§6): the shared obdev.at vendor ID used by V-USB-class devices with no
// product-specific PID allocation, paired with this project's product
// string.
const (
	defaultVendorID      = 0x16c0
	defaultProductID     = 0x05dc
	defaultVendorString  = "obdev.at"
	defaultProductString = "USB jboot"
)

// config holds the fully-parsed CLI configuration for one invocation,
// bound from pflag/viper in bindFlags and validated in run.
type config struct {
	// Device matching (§4.4).
	VendorID      uint16
	ProductID     uint16
	VendorString  string
	ProductString string
	Timeout       time.Duration
	PollInterval  time.Duration

	// TransferTimeout bounds every individual control transfer once a
	// device is found (the original C burner's BOOTLOADER_TIMEOUT, passed
	// to every bootloader_connect/bootloader_flashPageRead/... call).
	TransferTimeout time.Duration

	// Operation selection (§6). Exactly a subset of Erase/Dump/Write may be
	// requested per invocation; Commit and Reset compose with any of them.
	Erase  bool
	Dump   bool
	Write  bool
	Reset  bool
	Commit bool

	PageStart int
	PageEnd   int
	Offset    int
	Size      int

	MemoryType string

	InPath  string
	OutPath string

	Verbose bool
}

// memoryType translates the --memory-type flag value into a
// pipeline.MemoryType, defaulting to flash (§6).
func (c config) memoryType() pipeline.MemoryType {
	switch c.MemoryType {
	case "e2prom", "eeprom", "nvram":
		return pipeline.MemoryNVRAM
	default:
		return pipeline.MemoryFlash
	}
}

// bindFlags registers the §6 CLI surface on flags and binds every flag into
// v, so values can be read uniformly through v.Get* regardless of whether
// they came from the command line, environment, or (future) config file.
func bindFlags(flags *pflag.FlagSet, v *viper.Viper) {
	flags.BoolP("erase", "e", false, "flash-erase mode")
	flags.BoolP("dump", "d", false, "read/dump mode")
	flags.BoolP("write", "w", false, "write mode")
	flags.BoolP("reset", "r", false, "issue REBOOT after operations")
	flags.BoolP("commit", "c", false, "recompute and store the CRC-8 footer after writes")

	flags.Int("page-start", 0, "first page for erase mode (inclusive)")
	flags.Int("page-end", -1, "last page for erase mode (inclusive); defaults to the last application page")
	flags.Int("offset", 0, "byte offset for dump/write mode")
	flags.Int("size", -1, "byte count for dump mode; defaults to the full memory")

	flags.StringP("memory-type", "m", "flash", "memory type: flash|e2prom")
	flags.StringP("in", "i", "", "input file for write mode")
	flags.StringP("out", "o", "", "output file for dump mode; defaults to stdout hex")

	flags.Uint("vid", defaultVendorID, "bootloader USB vendor ID")
	flags.Uint("pid", defaultProductID, "bootloader USB product ID")
	flags.String("vendor-string", defaultVendorString, "expected USB manufacturer descriptor string")
	flags.String("product-string", defaultProductString, "expected USB product descriptor string")
	flags.Duration("enumerate-timeout", 5*time.Second, "deadline for matching a device on the bus")
	flags.Duration("poll-interval", 200*time.Millisecond,
		"interval between bus polls while enumerating (JBOOT_POLL_INTERVAL)")
	flags.Duration("timeout", 3*time.Second,
		"per-control-transfer timeout once a device is found (JBOOT_TIMEOUT)")

	flags.BoolP("verbose", "v", false, "enable debug logging")

	_ = v.BindPFlags(flags)
	v.SetEnvPrefix("jboot")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// loadConfig reads every bound flag out of v into a config value.
func loadConfig(v *viper.Viper) config {
	return config{
		VendorID:        uint16(v.GetUint("vid")),
		ProductID:       uint16(v.GetUint("pid")),
		VendorString:    v.GetString("vendor-string"),
		ProductString:   v.GetString("product-string"),
		Timeout:         v.GetDuration("enumerate-timeout"),
		PollInterval:    v.GetDuration("poll-interval"),
		TransferTimeout: v.GetDuration("timeout"),

		Erase:  v.GetBool("erase"),
		Dump:   v.GetBool("dump"),
		Write:  v.GetBool("write"),
		Reset:  v.GetBool("reset"),
		Commit: v.GetBool("commit"),

		PageStart: v.GetInt("page-start"),
		PageEnd:   v.GetInt("page-end"),
		Offset:    v.GetInt("offset"),
		Size:      v.GetInt("size"),

		MemoryType: v.GetString("memory-type"),
		InPath:     v.GetString("in"),
		OutPath:    v.GetString("out"),

		Verbose: v.GetBool("verbose"),
	}
}
