package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/obdevboot/jboot/device/proto"
	"github.com/obdevboot/jboot/flashimage"
	"github.com/obdevboot/jboot/host/mcutable"
	"github.com/obdevboot/jboot/host/pipeline"
	"github.com/obdevboot/jboot/host/usbdevice"
	"github.com/obdevboot/jboot/hosterr"
)

// run carries out one CLI invocation end to end: enumerate, connect,
// identify, dispatch the requested operations, and optionally commit/reset
// (§2 "Control flow").
func run(ctx context.Context, cfg config, log *logrus.Logger) error {
	lister := usbdevice.NewGousbLister()
	defer lister.Close()

	enumerator := usbdevice.NewEnumerator(lister, cfg.PollInterval)
	log.WithFields(logrus.Fields{
		"vid": fmt.Sprintf("0x%04x", cfg.VendorID),
		"pid": fmt.Sprintf("0x%04x", cfg.ProductID),
	}).Info("waiting for device")

	raw, err := enumerator.Find(ctx, usbdevice.Match{
		VendorID:      cfg.VendorID,
		ProductID:     cfg.ProductID,
		VendorString:  cfg.VendorString,
		ProductString: cfg.ProductString,
		Timeout:       cfg.Timeout,
	})
	if err != nil {
		return errors.Wrap(err, "find device")
	}
	defer raw.Close()

	transport := usbdevice.NewTransport(raw, cfg.TransferTimeout)
	defer transport.Close()

	// CONNECT and GET_INFO need no shadow sizing, so they're issued
	// directly against the transport before a Pipeline (which owns the
	// flash/NVRAM shadows) can even be constructed.
	connectResp := make([]byte, 1)
	if _, err := transport.Control(uint8(proto.Connect), 0, 0, connectResp); err != nil {
		return errors.Wrap(err, "connect")
	}
	if err := proto.ParseStatusOnlyResponse("connect", connectResp); err != nil {
		return errors.Wrap(err, "connect")
	}

	infoResp := make([]byte, proto.GetInfoResponseSize)
	if _, err := transport.Control(uint8(proto.GetInfo), 0, 0, infoResp); err != nil {
		return errors.Wrap(err, "get info")
	}
	info, err := proto.ParseGetInfoResponse(infoResp)
	if err != nil {
		return errors.Wrap(err, "get info")
	}
	log.WithFields(logrus.Fields{
		"bootloader_version": fmt.Sprintf("%d.%d", info.VersionMajor, info.VersionMinor),
		"signature":          fmt.Sprintf("%02X%02X%02X", info.Signature[0], info.Signature[1], info.Signature[2]),
	}).Info("connected")

	mcu, err := mcutable.Lookup(info.Signature)
	if err != nil {
		return errors.Wrap(err, "identify MCU")
	}
	layout := mcu.Layout(info.BootloaderSizeInPages)
	log.WithFields(logrus.Fields{
		"mcu":        mcu.Name,
		"page_size":  layout.PageSize,
		"page_count": layout.PageCount,
	}).Info("target identified")

	pl := pipeline.New(transport, layout, mcu.NVRAMSize,
		pipeline.WithLogger(log),
		pipeline.WithProgressCallback(progressLogger(log)),
	)

	if err := dispatch(ctx, pl, layout, mcu.NVRAMSize, cfg); err != nil {
		return err
	}

	if cfg.Reset {
		if err := pl.Reset(ctx); err != nil {
			return errors.Wrap(err, "reset")
		}
		log.Info("reset issued")
	}

	return nil
}

// dispatch runs the operations the user selected, in the fixed order
// erase, write, commit, dump: §4.6 requires writes to finish before commit
// begins, and a trailing dump should observe whatever state resulted.
func dispatch(ctx context.Context, pl *pipeline.Pipeline, layout flashimage.Layout, nvramSize int, cfg config) error {
	if cfg.Erase {
		pageEnd := cfg.PageEnd
		if pageEnd < 0 {
			pageEnd = layout.LastPage()
		}
		if err := pl.Erase(ctx, cfg.PageStart, pageEnd); err != nil {
			return errors.Wrap(err, "erase")
		}
	}

	if cfg.Write {
		if cfg.InPath == "" {
			return hosterr.New(hosterr.BadParameter, "write", "--in is required in write mode")
		}
		input, err := os.ReadFile(cfg.InPath)
		if err != nil {
			return errors.Wrap(err, "read input file")
		}
		if err := pl.Write(ctx, cfg.memoryType(), cfg.Offset, input); err != nil {
			return errors.Wrap(err, "write")
		}
	}

	if cfg.Commit {
		if err := pl.Commit(ctx); err != nil {
			return errors.Wrap(err, "commit")
		}
	}

	if cfg.Dump {
		if err := doDump(ctx, pl, layout, nvramSize, cfg); err != nil {
			return errors.Wrap(err, "dump")
		}
	}

	return nil
}

// doDump resolves the §6 --out/stdout destination and the default
// full-memory size, then runs the read.
func doDump(ctx context.Context, pl *pipeline.Pipeline, layout flashimage.Layout, nvramSize int, cfg config) error {
	var out io.Writer
	if cfg.OutPath != "" {
		f, err := os.Create(cfg.OutPath)
		if err != nil {
			return errors.Wrap(err, "open output file")
		}
		defer f.Close()
		out = f
	} else {
		enc := hex.NewEncoder(os.Stdout)
		defer fmt.Println()
		out = enc
	}

	size := cfg.Size
	if size < 0 {
		memorySize := layout.ReadableSize()
		if cfg.memoryType() == pipeline.MemoryNVRAM {
			memorySize = nvramSize
		}
		size = memorySize - cfg.Offset
	}

	return pl.Dump(ctx, cfg.memoryType(), cfg.Offset, size, out)
}
