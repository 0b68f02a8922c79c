package main

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/decred/dcrd/crypto/rand"
	"github.com/mitchellh/mapstructure"
	"github.com/opd-ai/go-lanerng"
	"github.com/opd-ai/go-lanerng/internal"
)

// Keys accepted as key=value arguments.
const (
	keyFilePath = "file_path"
	keySeed     = "seed_u8"
	keyLength   = "length_u8"
	keyTypes    = "types_of_arr"
)

var requiredKeys = []string{keyFilePath, keySeed, keyLength, keyTypes}

// options are the command line flags.  Everything else on the command line
// is a key=value job argument.
type options struct {
	DebugLevel string `short:"d" long:"debuglevel" env:"LANERNG_DEBUGLEVEL" description:"Logging level {trace, debug, info, warn, error, critical, off}"`
	Passphrase string `short:"p" long:"passphrase" env:"LANERNG_PASSPHRASE" description:"Derive seed_u8 from a passphrase (Argon2id)"`
	RandomSeed int    `short:"r" long:"randomseed" description:"Generate seed_u8 with this many bytes from the system CSPRNG"`
}

// batchKind is the element type of a generated batch.
type batchKind int

const (
	batchU64 batchKind = iota
	batchF64
)

func (k batchKind) String() string {
	switch k {
	case batchU64:
		return "u64"
	case batchF64:
		return "f64"
	default:
		return fmt.Sprintf("batchKind(%d)", int(k))
	}
}

// batchReq is one type:amount element of types_of_arr.
type batchReq struct {
	Kind   batchKind
	Amount int
}

type (
	seedBytes []byte
	batchList []batchReq
)

// job is a fully decoded generation request.
type job struct {
	FilePath string    `mapstructure:"file_path"`
	Seed     seedBytes `mapstructure:"seed_u8"`
	Length   uint64    `mapstructure:"length_u8"`
	Batches  batchList `mapstructure:"types_of_arr"`
}

// Config returns the generator configuration of the job.
func (j *job) Config() lanerng.Config {
	return lanerng.Config{Size: j.Length, Seed: j.Seed}
}

// parseKeyArgs splits key=value arguments.  Every argument must contain
// exactly one '=' and a non-empty key, and keys may not repeat.
func parseKeyArgs(args []string) (map[string]string, error) {
	kv := make(map[string]string, len(args))
	for _, arg := range args {
		parts := strings.Split(arg, "=")
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("malformed argument %q: want key=value", arg)
		}
		if _, ok := kv[parts[0]]; ok {
			return nil, fmt.Errorf("duplicate key %q", parts[0])
		}
		kv[parts[0]] = parts[1]
	}
	return kv, nil
}

// applySeedSource fills seed_u8 from the passphrase or random seed options.
// At most one seed source may be given.
func applySeedSource(kv map[string]string, opts *options) error {
	var sources []string
	if _, ok := kv[keySeed]; ok {
		sources = append(sources, keySeed)
	}
	if opts.Passphrase != "" {
		sources = append(sources, "--passphrase")
	}
	if opts.RandomSeed != 0 {
		sources = append(sources, "--randomseed")
	}
	if len(sources) > 1 {
		return fmt.Errorf("conflicting seed sources: %s", strings.Join(sources, ", "))
	}

	var seed []byte
	switch {
	case opts.Passphrase != "":
		seed = internal.DeriveSeed([]byte(opts.Passphrase), internal.DefaultSeedArgon2Config())
		log.Debugf("Derived %d seed bytes from passphrase", len(seed))
	case opts.RandomSeed < 0:
		return fmt.Errorf("invalid random seed length %d", opts.RandomSeed)
	case opts.RandomSeed > 0:
		seed = make([]byte, opts.RandomSeed)
		rand.Read(seed)
		log.Infof("Generated random seed: %s", lanerng.FormatBytes(seed))
	default:
		return nil
	}

	kv[keySeed] = lanerng.FormatBytes(seed)
	return nil
}

// parseSeed decodes a comma-separated list of hex bytes.
func parseSeed(s string) (seedBytes, error) {
	parts := strings.Split(s, ",")
	seed := make(seedBytes, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("seed byte %d (%q): %w", i, p, err)
		}
		seed[i] = byte(v)
	}
	return seed, nil
}

// parseBatches decodes a comma-separated list of type:amount pairs.
func parseBatches(s string) (batchList, error) {
	var batches batchList
	for _, elem := range strings.Split(s, ",") {
		parts := strings.Split(elem, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed batch %q: want type:amount", elem)
		}

		var req batchReq
		switch parts[0] {
		case "u64":
			req.Kind = batchU64
		case "f64":
			req.Kind = batchF64
		default:
			return nil, fmt.Errorf("unknown batch type %q", parts[0])
		}

		amount, err := strconv.ParseUint(parts[1], 10, 31)
		if err != nil {
			return nil, fmt.Errorf("batch %q amount: %w", elem, err)
		}
		req.Amount = int(amount)
		batches = append(batches, req)
	}
	return batches, nil
}

// jobDecodeHook converts the string values of seed_u8, length_u8 and
// types_of_arr into their typed forms.
func jobDecodeHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	s := data.(string)
	switch to {
	case reflect.TypeOf(seedBytes(nil)):
		return parseSeed(s)
	case reflect.TypeOf(batchList(nil)):
		return parseBatches(s)
	case reflect.TypeOf(uint64(0)):
		return strconv.ParseUint(s, 10, 64)
	}
	return data, nil
}

// decodeJob checks for required keys and decodes the key/value map into a
// job.  Unknown keys are rejected.
func decodeJob(kv map[string]string) (*job, error) {
	var missing []string
	for _, key := range requiredKeys {
		if _, ok := kv[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing required keys: %s", strings.Join(missing, ", "))
	}

	var j job
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.DecodeHookFuncType(jobDecodeHook),
		ErrorUnused: true,
		Result:      &j,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(kv); err != nil {
		return nil, err
	}

	if j.FilePath == "" {
		return nil, errors.New("file_path must not be empty")
	}
	config := j.Config()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &j, nil
}
