package folio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/pretty"
)

// Top level keys of the portfolio document.
const (
	keyPositions    = "positions"
	keyPriceCache   = "priceCache"
	keySnapshots    = "snapshots"
	keyClosedTrades = "closedTrades"
	keyTransactions = "transactions"
)

// State is the whole portfolio document held in memory.
//
// Only positions, priceCache and snapshots are written back; closedTrades,
// transactions and any other top level member are kept as read.
type State struct {
	root object

	Positions    []*Position
	PriceCache   *PriceCache
	Snapshots    *Snapshots
	ClosedTrades []*ClosedTrade
	Transactions []*Transaction
}

// NewState returns an empty state.
func NewState() *State {
	return &State{PriceCache: new(PriceCache), Snapshots: new(Snapshots)}
}

// decodeMember decodes the top level member key into v, if present.
func (s *State) decodeMember(key string, v any) error {
	raw, ok := s.root.get(key)
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	return nil
}

// DecodeState reads a portfolio document.
func DecodeState(r io.Reader) (*State, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s := NewState()
	if err := s.root.UnmarshalJSON(content); err != nil {
		return nil, fmt.Errorf("invalid portfolio document: %w", err)
	}
	if err := s.decodeMember(keyPositions, &s.Positions); err != nil {
		return nil, err
	}
	if err := s.decodeMember(keyPriceCache, s.PriceCache); err != nil {
		return nil, err
	}
	if err := s.decodeMember(keySnapshots, s.Snapshots); err != nil {
		return nil, err
	}
	if err := s.decodeMember(keyClosedTrades, &s.ClosedTrades); err != nil {
		return nil, err
	}
	if err := s.decodeMember(keyTransactions, &s.Transactions); err != nil {
		return nil, err
	}
	if err := noNull(keyPositions, s.Positions); err != nil {
		return nil, err
	}
	if err := noNull(keyClosedTrades, s.ClosedTrades); err != nil {
		return nil, err
	}
	if err := noNull(keyTransactions, s.Transactions); err != nil {
		return nil, err
	}
	return s, nil
}

// noNull reports null array elements, which decode to nil pointers.
func noNull[T any](key string, elems []*T) error {
	for i, e := range elems {
		if e == nil {
			return fmt.Errorf("invalid %s: element %d is null", key, i)
		}
	}
	return nil
}

// Encode writes the whole document, indented by two spaces with one array
// element per line. Non-ASCII text is written as is.
func (s *State) Encode(w io.Writer) error {
	positions := s.Positions
	if positions == nil {
		positions = []*Position{}
	}
	cache := s.PriceCache
	if cache == nil {
		cache = new(PriceCache)
	}
	snapshots := s.Snapshots
	if snapshots == nil {
		snapshots = new(Snapshots)
	}

	// Members missing from the document are appended in this order.
	if err := s.root.set(keyPriceCache, cache); err != nil {
		return err
	}
	if err := s.root.set(keyPositions, positions); err != nil {
		return err
	}
	if err := s.root.set(keySnapshots, snapshots); err != nil {
		return err
	}

	compact, err := marshal(s.root)
	if err != nil {
		return err
	}
	_, err = w.Write(pretty.PrettyOptions(compact, &pretty.Options{Width: -1, Indent: "  "}))
	return err
}

// LoadState reads the portfolio document stored at path.
//
// A missing file is reported with an error that matches fs.ErrNotExist.
func LoadState(path string) (*State, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := DecodeState(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode %q: %w", path, err)
	}
	return s, nil
}

// Save replaces the document stored at path with s.
//
// The document is written to a temporary file in the same directory first and
// then renamed over path, so path always holds either the old or the new
// document.
func (s *State) Save(path string) error {
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return fmt.Errorf("cannot encode portfolio: %w", err)
	}
	return writeFileAtomic(path, buf.Bytes())
}

func writeFileAtomic(path string, data []byte) (err error) {
	mode := fs.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err = f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp, mode); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
