package command

import (
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// Resolve parses a token sequence into one Request. It is total and
// side-effect free: no wallet, network, or store access happens here. Any
// failure comes back as a *ParseError whose message is ready to print.
//
// "exit" is only part of the grammar in interactive mode.
func Resolve(tokens []string, interactive bool) (Request, error) {
	if len(tokens) == 0 {
		return nil, parseErrorf("empty command")
	}

	name, rest := tokens[0], tokens[1:]

	switch name {
	case "exit":
		if !interactive {
			return nil, parseErrorf("unknown command: %q", name)
		}
		if len(rest) != 0 {
			return nil, parseErrorf("exit takes no arguments")
		}
		return Exit{}, nil

	case "sync", "get_balance":
		if len(rest) != 0 {
			return nil, parseErrorf("%s takes no arguments", name)
		}
		return OnlineWalletOp{Name: name}, nil

	case "broadcast":
		fs := newFlagSet(name)
		psbt := fs.String("psbt", "", "PSBT to broadcast, base64 encoded")
		if err := parseFlags(fs, name, rest); err != nil {
			return nil, err
		}
		if *psbt == "" {
			return nil, parseErrorf("%s: required flag --psbt is missing", name)
		}
		return OnlineWalletOp{Name: name, PSBT: *psbt}, nil

	case "get_new_address", "list_unspent", "list_transactions", "policies", "public_descriptor":
		if len(rest) != 0 {
			return nil, parseErrorf("%s takes no arguments", name)
		}
		return OfflineWalletOp{Name: name}, nil

	case "create_tx":
		fs := newFlagSet(name)
		to := fs.StringArray("to", nil, "recipient as address:amount")
		feeRate := fs.Float64("fee_rate", 1.0, "fee rate in sat/vbyte")
		policy := fs.String("external_policy", "", "policy path for the external keychain")
		if err := parseFlags(fs, name, rest); err != nil {
			return nil, err
		}
		if len(*to) == 0 {
			return nil, parseErrorf("%s: required flag --to is missing", name)
		}
		recipients, err := ParseRecipients(*to)
		if err != nil {
			return nil, err
		}
		return OfflineWalletOp{
			Name:           name,
			Recipients:     recipients,
			FeeRate:        *feeRate,
			ExternalPolicy: *policy,
		}, nil

	case "sign":
		fs := newFlagSet(name)
		psbt := fs.String("psbt", "", "PSBT to sign, base64 encoded")
		if err := parseFlags(fs, name, rest); err != nil {
			return nil, err
		}
		if *psbt == "" {
			return nil, parseErrorf("%s: required flag --psbt is missing", name)
		}
		return OfflineWalletOp{Name: name, PSBT: *psbt}, nil

	case "generate":
		fs := newFlagSet(name)
		words := fs.Int("word_count", 24, "mnemonic word count, 12 or 24")
		password := fs.StringP("password", "p", "", "seed password")
		if err := parseFlags(fs, name, rest); err != nil {
			return nil, err
		}
		if *words != 12 && *words != 24 {
			return nil, parseErrorf("%s: word_count must be 12 or 24, got %d", name, *words)
		}
		return KeyOp{Name: name, WordCount: *words, Password: *password}, nil

	case "restore":
		fs := newFlagSet(name)
		mnemonic := fs.StringP("mnemonic", "m", "", "recovery phrase")
		password := fs.StringP("password", "p", "", "seed password")
		if err := parseFlags(fs, name, rest); err != nil {
			return nil, err
		}
		if *mnemonic == "" {
			return nil, parseErrorf("%s: required flag --mnemonic is missing", name)
		}
		return KeyOp{Name: name, Mnemonic: *mnemonic, Password: *password}, nil

	case "derive":
		fs := newFlagSet(name)
		xprv := fs.String("xprv", "", "extended private key to derive from")
		path := fs.String("path", "", "derivation path, e.g. m/84'/1'/0'")
		if err := parseFlags(fs, name, rest); err != nil {
			return nil, err
		}
		if *xprv == "" {
			return nil, parseErrorf("%s: required flag --xprv is missing", name)
		}
		if *path == "" {
			return nil, parseErrorf("%s: required flag --path is missing", name)
		}
		return KeyOp{Name: name, XPrv: *xprv, Path: *path}, nil

	default:
		return nil, parseErrorf("unknown command: %q", name)
	}
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *pflag.FlagSet, name string, args []string) error {
	if err := fs.Parse(args); err != nil {
		return parseErrorf("%s: %v", name, err)
	}
	if fs.NArg() != 0 {
		return parseErrorf("%s: unexpected argument %q", name, fs.Arg(0))
	}
	return nil
}

// ParseRecipients converts "address:amount" strings into recipients. It is
// shared by the one-shot flags and the interactive resolver.
func ParseRecipients(raw []string) ([]Recipient, error) {
	recipients := make([]Recipient, 0, len(raw))
	for _, r := range raw {
		idx := strings.LastIndex(r, ":")
		if idx <= 0 || idx == len(r)-1 {
			return nil, parseErrorf("invalid recipient %q: expected address:amount", r)
		}
		amount, err := strconv.ParseUint(r[idx+1:], 10, 64)
		if err != nil {
			return nil, parseErrorf("invalid amount in recipient %q: %v", r, err)
		}
		recipients = append(recipients, Recipient{Address: r[:idx], Amount: amount})
	}
	return recipients, nil
}
