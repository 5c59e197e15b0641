package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	vybiumpolyperm "github.com/vybium/vybium-polyperm/pkg/vybium-polyperm"
)

var logger = log.New(os.Stderr, "vybium-polyperm: ", 0)

func main() {
	config := vybiumpolyperm.DefaultConfig()

	flag.Int64Var(&config.Modulus, "modulus", config.Modulus, "default prime modulus for requests without one")
	flag.IntVar(&config.DegreeBound, "bound", config.DegreeBound, "degree bound of results (0 selects phi(m) + 1)")
	flag.StringVar(&config.HashFunction, "hash", config.HashFunction, "transcript hash: sha3, sha256, shake256 or tip5")
	flag.IntVar(&config.Rounds, "rounds", config.Rounds, "spot checks per verification")
	seed := flag.String("seed", string(config.Seed), "sampler seed; empty uses the system PRNG")
	flag.Parse()
	config.WithSeed([]byte(*seed))

	server, err := newServer(config)
	if err != nil {
		fatal(fmt.Sprintf("Failed to create engine: %v", err))
	}

	logStderr(fmt.Sprintf("Reading requests (default modulus %d)...", config.Modulus))
	if err := serve(server, os.Stdin, os.Stdout); err != nil {
		fatal(err.Error())
	}
}

// serve answers one JSON request per input line with one JSON response line
func serve(s *server, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	encoder := json.NewEncoder(out)

	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}

		var req request
		var resp *response
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			resp = &response{Error: fmt.Sprintf("failed to parse request: %v", err), Code: int(vybiumpolyperm.ErrInvalidInput)}
		} else {
			resp = s.handle(&req)
		}
		if resp.Error != "" {
			logStderr(fmt.Sprintf("line %d: %s", line, resp.Error))
		}

		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read requests: %w", err)
	}
	return nil
}

func logStderr(msg string) {
	logger.Println(msg)
}

func fatal(msg string) {
	logStderr("ERROR: " + msg)
	os.Exit(1)
}
