package model

// TitleBlock describes a sheet size in millimetres (landscape) and the
// height reserved for the title strip along the bottom edge.
type TitleBlock struct {
	Name           string  `json:"name"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	TitleAllowance float64 `json:"title_allowance"`
	IsBuiltIn      bool    `json:"-"`
}

// Built-in ISO title blocks.
var TitleBlocks = []TitleBlock{
	{Name: "A0", Width: 1189, Height: 841, TitleAllowance: 120, IsBuiltIn: true},
	{Name: "A1", Width: 841, Height: 594, TitleAllowance: 100, IsBuiltIn: true},
	{Name: "A2", Width: 594, Height: 420, TitleAllowance: 100, IsBuiltIn: true},
	{Name: "A3", Width: 420, Height: 297, TitleAllowance: 60, IsBuiltIn: true},
	{Name: "A4", Width: 297, Height: 210, TitleAllowance: 40, IsBuiltIn: true},
}

// CustomTitleBlocks holds user-defined title blocks loaded at runtime.
var CustomTitleBlocks []TitleBlock

const defaultTitleBlock = "A2"

// AllTitleBlocks returns built-in title blocks followed by custom ones.
func AllTitleBlocks() []TitleBlock {
	all := make([]TitleBlock, 0, len(TitleBlocks)+len(CustomTitleBlocks))
	all = append(all, TitleBlocks...)
	all = append(all, CustomTitleBlocks...)
	return all
}

// GetTitleBlock returns a title block by name. Custom title blocks shadow
// built-ins of the same name; unknown names fall back to A2.
func GetTitleBlock(name string) TitleBlock {
	tb, _ := LookupTitleBlock(name)
	return tb
}

// LookupTitleBlock is GetTitleBlock that also reports whether the name matched.
func LookupTitleBlock(name string) (TitleBlock, bool) {
	for _, tb := range CustomTitleBlocks {
		if tb.Name == name {
			return tb, true
		}
	}
	var fallback TitleBlock
	for _, tb := range TitleBlocks {
		if tb.Name == name {
			return tb, true
		}
		if tb.Name == defaultTitleBlock {
			fallback = tb
		}
	}
	return fallback, false
}

// TitleBlockNames returns the names of all available title blocks.
func TitleBlockNames() []string {
	var names []string
	for _, tb := range AllTitleBlocks() {
		names = append(names, tb.Name)
	}
	return names
}

// LargerTitleBlock returns the next larger built-in ISO size, if any.
func LargerTitleBlock(name string) (TitleBlock, bool) {
	for i, tb := range TitleBlocks {
		if tb.Name == name && i > 0 {
			return TitleBlocks[i-1], true
		}
	}
	return TitleBlock{}, false
}
