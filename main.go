package main

import (
	"os"

	"github.com/alecthomas/kingpin"
	log "github.com/sirupsen/logrus"

	"github.com/bbfw/makesksa/config"
	"github.com/bbfw/makesksa/sksa"
)

var (
	app = kingpin.New("makesksa", "Builds a BB SKSA image from an SK and one or two SA blobs. Pass - to read an input from stdin or write the image to stdout.")

	virage2 = app.Arg("virage2", "input Virage2 dump (used for key derivation)").Required().String()
	bootrom = app.Arg("bootrom", "input bootrom (used for key derivation)").Required().String()
	sk      = app.Arg("sk", "input SK").Required().String()
	sa1     = app.Arg("sa1", "input SA1").Required().String()
	sa1Cid  = app.Arg("sa1-cid", "SA1 content ID (decimal or 0x hex)").Required().String()
	sa2     = app.Arg("sa2", "input SA2 (optional)").String()
	sa2Cid  = app.Arg("sa2-cid", "SA2 content ID, required with an SA2").String()
	outfile = app.Arg("outfile", "output SKSA").Default("out.sksa").String()

	sa1Key   = app.Flag("sa1-key", "SA1 encryption key (32 hex chars)").String()
	sa1Iv    = app.Flag("sa1-iv", "SA1 encryption IV (32 hex chars)").String()
	sa1KeyIv = app.Flag("sa1-key-iv", "SA1 key IV (32 hex chars)").String()
	sa2Key   = app.Flag("sa2-key", "SA2 encryption key (32 hex chars)").String()
	sa2Iv    = app.Flag("sa2-iv", "SA2 encryption IV (32 hex chars)").String()
	sa2KeyIv = app.Flag("sa2-key-iv", "SA2 key IV (32 hex chars)").String()

	verbose = app.Flag("verbose", "log build stages").Short('v').Bool()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Resolve(config.Options{
		Virage2:  *virage2,
		Bootrom:  *bootrom,
		SK:       *sk,
		SA1:      *sa1,
		SA1Cid:   *sa1Cid,
		SA1Key:   *sa1Key,
		SA1Iv:    *sa1Iv,
		SA1KeyIv: *sa1KeyIv,
		SA2:      *sa2,
		SA2Cid:   *sa2Cid,
		SA2Key:   *sa2Key,
		SA2Iv:    *sa2Iv,
		SA2KeyIv: *sa2KeyIv,
		Outfile:  *outfile,
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := sksa.Build(cfg); err != nil {
		log.Fatal(err)
	}
}
