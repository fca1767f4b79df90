package models

import (
	"sort"
	"strings"
)

var positionAliases = map[string]string{
	"DEF":      PositionDST,
	"DST":      PositionDST,
	"D":        PositionDST,
	"D-ST":     PositionDST,
	"PK":       "K",
	"W/R/T":    PositionFlex,
	"RB/WR":    PositionFlex,
	"WR/TE":    PositionFlex,
	"RB/WR/TE": PositionFlex,
}

var slotAliases = map[string]string{
	"BE":              SlotBench,
	"BN":              SlotBench,
	"BENCH":           SlotBench,
	"IR":              SlotIR,
	"INJURED-RESERVE": SlotIR,
	"INJURED RESERVE": SlotIR,
	"RES":             SlotIR,
}

// positionOrder is the display order used by lineups and all-pro teams.
var positionOrder = map[string]int{
	"QB":         1,
	"RB":         2,
	"WR":         3,
	"TE":         4,
	PositionFlex: 5,
	PositionDST:  6,
	"K":          7,
}

// NormalizePosition maps position synonyms onto one canonical code.
func NormalizePosition(position string) string {
	p := strings.ToUpper(strings.TrimSpace(position))
	if alias, ok := positionAliases[p]; ok {
		return alias
	}
	return p
}

// NormalizeSlot canonicalizes a lineup slot. Bench and IR spellings collapse
// to SlotBench and SlotIR; anything else is treated as a position.
func NormalizeSlot(slot string) string {
	s := strings.ToUpper(strings.TrimSpace(slot))
	if alias, ok := slotAliases[s]; ok {
		return alias
	}
	return NormalizePosition(s)
}

// IsReserveSlot reports whether slot keeps a player out of the scoring lineup.
func IsReserveSlot(slot string) bool {
	switch NormalizeSlot(slot) {
	case SlotBench, SlotIR:
		return true
	}
	return false
}

// SortPositions orders positions QB, RB, WR, TE, FLEX, D/ST, K, then any
// others alphabetically.
func SortPositions(positions []string) {
	sort.SliceStable(positions, func(i, j int) bool {
		oi, iok := positionOrder[positions[i]]
		oj, jok := positionOrder[positions[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok:
			return true
		case jok:
			return false
		}
		return positions[i] < positions[j]
	})
}

// ParsePositions splits a comma separated list into normalized positions.
func ParsePositions(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = NormalizePosition(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
