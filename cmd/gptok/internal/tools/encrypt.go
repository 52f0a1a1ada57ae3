package tools

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"

	"github.com/rusq/gptok/cmd/gptok/internal/cfg"
	"github.com/rusq/gptok/cmd/gptok/internal/golang/base"
)

// pub   rsa4096 2026-08-25 [SC]
// FCA3B0876B4926CA4D66D4CA5EC342F9A1D9F375
// pubkey: <16064414+rusq@users.noreply.github.com>
// sub   rsa4096 2026-08-25 [E]
const pubkey = `-----BEGIN PGP PUBLIC KEY BLOCK-----

mQINBGqNaxQBEACyqDSQQAwhsCFoRaR5utSyXpARj27q1VgPtgtyFBbch3+3/AOM
Gllbv2mRbAOAAOlDCvUqkK9xukF2IUTtKmjxZWFh53AbQGSJbaK1EUNLRgu18tJc
8ETBoSaYQaQIcM2yGrriHzpEG0LVWZ5A7rVeawwK3t8ZMn/jmHRZrKIwQaYayLLJ
v04PmoZ+Bv9n/Obp2vEIxUjyu4lJ47nb39pvybNLmEYwB6LHuhqVnVD1O33Y301h
EeUeRkR4jDUO8hxkMwRX3GtGVJZRtZw53CSlh+zdlhO96ApojgD6SmDCFUQ4uNXe
LX8JBsgw0PuceN6+UR1Fn4aYWahohyO1NXbMmKuCAG99XaOotOXIVUZRC2w5W22n
JkFUDR+tdYxLyndQn+J3K/8OJmYS5w0xjKvFXW1KigPh8E4pPeF34QP+bZBnZ4PT
45KTAsd6W3dHN5KLjG72cUy6CEho0eZBMFalRbiDKH3iONuMhGF1lnRbzrDGTnp5
B+UcOsqtHJ3Bo0lfmxB0S3M4YEogblRlQsnDu+wiODG4dCWpqLLsko6KH0g+njNV
FsEgBux2CKfwMckSVZ5oORNmmFdpwWLbYgLBdjQZVf5s3Y6FQraCTS5+AMxPAQhF
XVi0/+ba09eq9k3lXOm56vFwUcqI4t4EZnMCb7QrJJybzgzHTabhOFgfGQARAQAB
tDhSdXN0YW0gR2lseWF6b3YgPDE2MDY0NDE0K3J1c3FAdXNlcnMubm9yZXBseS5n
aXRodWIuY29tPokCTgQTAQoAOBYhBPyjsIdrSSbKTWbUyl7DQvmh2fN1BQJqjWsU
AhsDBQsJCAcCBhUKCQgLAgQWAgMBAh4BAheAAAoJEF7DQvmh2fN1vmAP/RymIQ5c
JSGLAmsglbQsJAiWGGGqhWlnuFeV4q6y/F5ykiJzWAyq34yl/869lL/KJdTr6DIW
duE6oj9Ophc5aef4NjqX+8BL5/eaSVYmLLhVk8CuEZsWrQ8oU8BrrsD47wVSGd34
5nqsn66QvtykLHUq+E3irpE6Tgmpih3dlKeTqFE9hMGFOwcZ1jXuD4/8rXWq20jl
AAl3btuH4nqfHFMyl56p1Yotsn60kanmSsb1G7NlIimYkz/YQe6EUwFlB3AED/f1
nh2sasRKoiUP/E/rZYuwwKGT7AFvwmeakDVaaQu5RdMhD03HSPjlLPo5Nd7+iRzR
67hzINbtHyiBVY33228qf332LQarNf7uQbRFjYnZLmZ2tsNYoWlR4mz0HGnUvtUF
5HsjwW7VxCtET2bDYZZq06tybBL+kSg2v6fZvam37ckFgHZx1XsoL4T9WELDN4qw
NjePEDWXpMRmDz6WVTJnJwaCx0gCStjGnBug/bTpy7Rs1NHY/OqMbrQw1xpUj8+u
x+cV/64Gh9vIJ/Y3rL3yOvGt5AnFLAYNe3ruJEQHxYLTXQ01g6XZi0JpYLP0+2gN
kMrYlYKn9hovjBLNJ2F83KaFRgtMsm5p8/jwYhJHRbhobYJ3cgzwU2fA7X14oKLH
a1jjbbVs8W7XXpgEy2Vmz1vYO57CrHFJG/kcuQINBGqNaxQBEACl8j1HwQ2m2qv7
w9PI+X55HAqUUfMDc/LFM4NJJRV8/sGZG0qJN1pweaZyb7YtM36MmjkLBMVibNUS
G+m4dPSjww/nYtajMc32oU1nI9+F7DMpej21dNbF79st84WA93OGM933w0+C+nLM
ZxiEWD/4egwfgzXOaN4xSIbDAu82SHwRv6g+eQJHwGyZCq9DqahKgQNwbLS7DNZT
qcV/CrDFjhO7+uMLEdwdgFm9R66ng7sVN1lSj48XXU5vHkms1mZ+6WKPFYlfcdQ1
LzCIbXEvV/LHT6UyfFi0anVza8t5GiHcxeaVTLcA5sTMcUNugmaH8EjV2l8l/A6z
lU//fwDu4xnbF/JDRlmuBkPrhTbh+fN8TsX9AM+8S51Ri2NguFF3QdzMz6/SZCJa
MtBKuV5++YzMy8uchwmSi3yiu5ilkXiRODptY7euMkvtr6msfvtTwRAH2jwLLmnZ
niBMQAhfyvbxE60pgTBGT0hE26i7MyVwkMwZEVWSKNDgGZB/FWCZI/AR+Kkd3R0v
0PK3hTU9nPnklwblRw2cZkK1YyJYJxnKx9d0iKXtsMYa+MDhZMRNxLmu6rfbg4A2
5IgfHTFGLlyIOTqwpAOsakdi/XjHovSvEv5HCwEOE3NPXquSTC+vcjTs25aS5rYA
jvt2fbodSZoRsKUMtS4OFGqaYvM9bQARAQABiQI2BBgBCgAgFiEE/KOwh2tJJspN
ZtTKXsNC+aHZ83UFAmqNaxQCGwwACgkQXsNC+aHZ83UogBAAqMoefGmms/GfGHqT
Gn9Vrl1nsMav0qlOiOYHxSYel1keNVrzxu/m4Yi/akCcma2GuXqSwH6uJH7U5O7y
aqfzL2UhPAsQ0Z1un+JSLCRzLw4CLVnovMwSU1BseLlQohZHJdYu16eTYqHJfizy
1xVMR6a0cYj4+IoVaU+mLC3HNS0fOwQOWwh2UeKKQ71gL+Qr6a60PkdVnQozNJGB
f/d8G/hh0uJHhCA5jHTqq4FN0JigKGHEDFzwv6CdNfyisgrHibiLXY9WMP14iuxK
fe6aoh02rIS0gAxEfVC6sjIw3D+f7szb9z3YYzZ/XJEB2aD0IUpocHjrigth2Nm4
ffU7NfuZQJUPTpn6wf3hwVMkAEIrgRITg9SBnJvcKa0xlXP7qpwkf3SUFVIZuRLr
gTVvqxPgMwE3PDRVcWtxJ8pLb8CTN+50+fDOOmnG5RMjH4i4ezcKTP7LVUlQNjn0
QKXDZOvsnjqDQiOD3KiEGELMHI/Kb6ToKbnpTlXdPNwHJevbEmM4D20vs5AKUqE6
k85rCPj6O3CCJpg5D1pNjgLKCuT50KNDZnMjzREs+mbASo4IiTbyBvFv3IwNDet6
IgiRjXcgvQL0eypmxIHwSmDwM+NGjFNznUZXlo8dCt2ShmO0iBoMbWWFnanyHCvQ
40SdgrIYfnGdpul18DfX8ppIuIY=
=Zm0T
-----END PGP PUBLIC KEY BLOCK-----
`

var cmdEncrypt = &base.Command{
	Run:       runEncrypt,
	UsageLine: "gptok tools encrypt [flags] [input] [output]",
	Short:     "encrypts a file to post in github issues",
	Long: `
# Command Encrypt

Encrypt a file with the developer key to attach to a github issue or send
as a message.

It uses the assymetric encryption (GPG) to encrypt the file with the
developer key, and can only be decrypted by the developer.

A dash or a missing argument stands for the standard input or output.  When
the output is the terminal, the message is armored, otherwise it is binary,
unless -a flag is given.

## Usage

Encrypt a file to attach as a file to a github issue:

	$ gptok tools encrypt file file.gpg

Encrypt a file to post as a message (for small files):

	$ gptok tools encrypt file

Encrypt the log file from the standard input:

	$ gptok tools encrypt <gptok.log >gptok.log.gpg
`,
	FlagMask:   cfg.OmitAll,
	PrintFlags: true,
}

var recipient *openpgp.Entity

func init() {
	if err := initRecipient(); err != nil {
		panic(err)
	}
	cmdEncrypt.Flag.BoolVar(&fArmor, "a", false, "shorthand for -armor")
	cmdEncrypt.Flag.BoolVar(&fArmor, "armor", false, "armor the output")
}

var fArmor bool

func initRecipient() error {
	block, err := armor.Decode(strings.NewReader(pubkey))
	if err != nil {
		return err
	}
	if block.Type != openpgp.PublicKeyType {
		return errors.New("invalid public key")
	}
	reader := packet.NewReader(block.Body)
	recipient, err = openpgp.ReadEntity(reader)
	if err != nil {
		return err
	}
	return nil
}

func runEncrypt(ctx context.Context, cmd *base.Command, args []string) error {
	in, out, arm, err := parseArgs(args)
	if err != nil {
		base.SetExitStatus(base.SInvalidParameters)
		return err
	}
	defer in.Close()
	defer out.Close()
	if fArmor {
		arm = true
	}
	if err := encrypt(in, out, arm); err != nil {
		base.SetExitStatus(base.SApplicationError)
		return err
	}
	return nil
}

// parseArgs parses the command arguments.  The first argument is the input
// file, the second one is the output file.  A dash or a missing argument
// stands for the standard stream.  Output to stdout is armored, output to a
// file is binary by default.
func parseArgs(args []string) (in io.ReadCloser, out io.WriteCloser, arm bool, err error) {
	in, out = os.Stdin, os.Stdout
	arm = true
	if len(args) > 0 && args[0] != "-" {
		if in, err = os.Open(args[0]); err != nil {
			return nil, nil, false, err
		}
	}
	if len(args) > 1 && args[1] != "-" {
		if out, err = os.Create(args[1]); err != nil {
			return nil, nil, false, err
		}
		arm = false
	}
	return in, out, arm, nil
}

// encrypt encrypts the data from in to out with the developer public key,
// optionally wrapping it in the ASCII armor.
func encrypt(in io.Reader, out io.Writer, arm bool) error {
	var w io.Writer = out
	if arm {
		aw, err := armor.Encode(out, "PGP MESSAGE", nil)
		if err != nil {
			return err
		}
		defer aw.Close()
		w = aw
	}
	cw, err := openpgp.Encrypt(w, []*openpgp.Entity{recipient}, nil, &openpgp.FileHints{IsBinary: true}, nil)
	if err != nil {
		return err
	}
	defer cw.Close()
	if _, err := io.Copy(cw, in); err != nil {
		return err
	}
	return nil
}
