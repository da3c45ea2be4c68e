package store

import (
	"errors"
	"fmt"
	"strings"

	"kairos/pkg/exchange"
)

var (
	ErrSymbolNotPresent = errors.New("symbol is not present in symbol table")
)

// SymbolStore is the explicit per-symbol configuration map handed to
// the broker at construction. It replaces any process-wide symbol
// lookup: every traded symbol must be registered here up front.
type SymbolStore struct {
	symbols []exchange.SymbolInfo
}

func CreateSymbolStore(symbols ...exchange.SymbolInfo) SymbolStore {
	return SymbolStore{
		symbols: symbols,
	}
}

func (s SymbolStore) Contains(symbolName string) bool {
	if _, err := s.Get(symbolName); err != nil {
		return false
	}
	return true
}

func (s SymbolStore) Get(symbolName string) (exchange.SymbolInfo, error) {
	for _, symbol := range s.symbols {
		if strings.EqualFold(symbol.SymbolName, symbolName) {
			return symbol, nil
		}
	}
	return exchange.SymbolInfo{}, fmt.Errorf("unable to get symbol with name %s: %w", symbolName, ErrSymbolNotPresent)
}

func (s SymbolStore) MustGet(symbolName string) exchange.SymbolInfo {
	symbol, err := s.Get(symbolName)
	if err != nil {
		panic(err.Error())
	}
	return symbol
}

func (s SymbolStore) Symbols() []exchange.SymbolInfo {
	return s.symbols
}
