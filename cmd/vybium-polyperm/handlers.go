package main

import (
	"encoding/hex"
	"fmt"

	vybiumpolyperm "github.com/vybium/vybium-polyperm/pkg/vybium-polyperm"
)

// request is one input line. Fields not used by an op are ignored.
type request struct {
	Op string `json:"op"`

	// Prime modulus; 0 uses the default
	Modulus int64 `json:"modulus,omitempty"`

	// Permutation as cycles or cycle notation
	Cycles      [][]int `json:"cycles,omitempty"`
	Permutation string  `json:"permutation,omitempty"`

	// Polynomial coefficients by increasing degree
	Coefficients []int64 `json:"coefficients,omitempty"`
	Divisor      []int64 `json:"divisor,omitempty"`

	// Output file for plot
	Output string `json:"output,omitempty"`
}

// response is one output line
type response struct {
	Op           string   `json:"op"`
	Modulus      int64    `json:"modulus,omitempty"`
	Polynomial   string   `json:"polynomial,omitempty"`
	Coefficients []string `json:"coefficients,omitempty"`
	Permutation  string   `json:"permutation,omitempty"`
	Quotient     string   `json:"quotient,omitempty"`
	Remainder    string   `json:"remainder,omitempty"`
	Verified     *bool    `json:"verified,omitempty"`
	Root         string   `json:"root,omitempty"`
	Fingerprint  string   `json:"fingerprint,omitempty"`
	Output       string   `json:"output,omitempty"`
	Error        string   `json:"error,omitempty"`
	Code         int      `json:"code,omitempty"`
}

// server holds one engine per modulus seen so far
type server struct {
	config  *vybiumpolyperm.Config
	engines map[int64]*vybiumpolyperm.Engine
}

func newServer(config *vybiumpolyperm.Config) (*server, error) {
	s := &server{
		config:  config.Clone(),
		engines: make(map[int64]*vybiumpolyperm.Engine),
	}
	if _, err := s.engine(config.Modulus); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *server) engine(modulus int64) (*vybiumpolyperm.Engine, error) {
	if modulus == 0 {
		modulus = s.config.Modulus
	}
	if e, ok := s.engines[modulus]; ok {
		return e, nil
	}
	e, err := vybiumpolyperm.NewEngine(s.config.Clone().WithModulus(modulus))
	if err != nil {
		return nil, err
	}
	s.engines[modulus] = e
	return e, nil
}

func (s *server) handle(req *request) *response {
	resp, err := s.dispatch(req)
	if err != nil {
		return &response{Op: req.Op, Error: err.Error(), Code: int(vybiumpolyperm.CodeOf(err))}
	}
	resp.Op = req.Op
	return resp
}

func (s *server) dispatch(req *request) (*response, error) {
	engine, err := s.engine(req.Modulus)
	if err != nil {
		return nil, err
	}

	switch req.Op {
	case "perm-to-poly":
		return permToPoly(engine, req)
	case "poly-to-perm":
		return polyToPerm(engine, req)
	case "divmod":
		return divMod(engine, req)
	case "commit":
		return commit(engine, req)
	case "sample":
		return sample(engine)
	case "plot":
		return plot(engine, req)
	default:
		return nil, &vybiumpolyperm.Error{
			Code:    vybiumpolyperm.ErrInvalidInput,
			Message: fmt.Sprintf("unknown op %q", req.Op),
		}
	}
}

func permutationOf(engine *vybiumpolyperm.Engine, req *request) (*vybiumpolyperm.Permutation, error) {
	if req.Permutation != "" {
		return engine.ParsePermutation(req.Permutation)
	}
	return vybiumpolyperm.NewPermutation(req.Cycles...)
}

func describe(engine *vybiumpolyperm.Engine, poly *vybiumpolyperm.Polynomial) *response {
	coefficients := poly.Coefficients()
	rendered := make([]string, len(coefficients))
	for i, c := range coefficients {
		rendered[i] = c.RatString()
	}
	return &response{
		Modulus:      engine.Modulus(),
		Polynomial:   poly.String(),
		Coefficients: rendered,
	}
}

func permToPoly(engine *vybiumpolyperm.Engine, req *request) (*response, error) {
	p, err := permutationOf(engine, req)
	if err != nil {
		return nil, err
	}
	bounded, err := engine.PermToPoly(p)
	if err != nil {
		return nil, err
	}
	verified, err := engine.Verify(bounded.Polynomial(), p)
	if err != nil {
		return nil, err
	}

	resp := describe(engine, bounded.Polynomial())
	resp.Permutation = p.String()
	resp.Verified = &verified
	return resp, nil
}

func polyToPerm(engine *vybiumpolyperm.Engine, req *request) (*response, error) {
	poly, err := vybiumpolyperm.NewPolynomial(req.Coefficients, engine.Modulus())
	if err != nil {
		return nil, err
	}
	p, err := engine.PolyToPerm(poly)
	if err != nil {
		return nil, err
	}

	resp := describe(engine, poly)
	resp.Permutation = p.String()
	return resp, nil
}

func divMod(engine *vybiumpolyperm.Engine, req *request) (*response, error) {
	a, err := vybiumpolyperm.NewPolynomial(req.Coefficients, engine.Modulus())
	if err != nil {
		return nil, err
	}
	b, err := vybiumpolyperm.NewPolynomial(req.Divisor, engine.Modulus())
	if err != nil {
		return nil, err
	}
	q, r, err := vybiumpolyperm.DivMod(a, b)
	if err != nil {
		return nil, err
	}
	verified, err := engine.VerifyDivision(a, b, q, r)
	if err != nil {
		return nil, err
	}

	resp := describe(engine, a)
	resp.Quotient = q.String()
	resp.Remainder = r.String()
	resp.Verified = &verified
	return resp, nil
}

func commit(engine *vybiumpolyperm.Engine, req *request) (*response, error) {
	p, err := permutationOf(engine, req)
	if err != nil {
		return nil, err
	}
	bounded, err := engine.PermToPoly(p)
	if err != nil {
		return nil, err
	}
	root, err := engine.Commit(p)
	if err != nil {
		return nil, err
	}
	fingerprint, err := engine.Fingerprint(bounded.Polynomial())
	if err != nil {
		return nil, err
	}

	resp := describe(engine, bounded.Polynomial())
	resp.Permutation = p.String()
	resp.Root = hex.EncodeToString(root)
	resp.Fingerprint = hex.EncodeToString(fingerprint)
	return resp, nil
}

func sample(engine *vybiumpolyperm.Engine) (*response, error) {
	p, err := engine.RandomPermutation()
	if err != nil {
		return nil, err
	}
	bounded, err := engine.PermToPoly(p)
	if err != nil {
		return nil, err
	}

	resp := describe(engine, bounded.Polynomial())
	resp.Permutation = p.String()
	return resp, nil
}

func plot(engine *vybiumpolyperm.Engine, req *request) (*response, error) {
	if req.Output == "" {
		return nil, &vybiumpolyperm.Error{Code: vybiumpolyperm.ErrInvalidInput, Message: "plot needs an output file"}
	}

	var poly *vybiumpolyperm.Polynomial
	if len(req.Coefficients) > 0 {
		p, err := vybiumpolyperm.NewPolynomial(req.Coefficients, engine.Modulus())
		if err != nil {
			return nil, err
		}
		poly = p
	} else {
		p, err := permutationOf(engine, req)
		if err != nil {
			return nil, err
		}
		bounded, err := engine.PermToPoly(p)
		if err != nil {
			return nil, err
		}
		poly = bounded.Polynomial()
	}

	if err := renderPlot(poly, req.Output); err != nil {
		return nil, err
	}
	resp := describe(engine, poly)
	resp.Output = req.Output
	return resp, nil
}
