// Package icon renders the symbols used in CLI and TUI output in the variant the user picked.
package icon

import (
	"sort"

	"github.com/mosaic-cli/mosaic/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Icon identifies a UI symbol.
type Icon int

const (
	Fail Icon = iota
	Success
	Mark
	Muted
	Audible
	Stream
	Grid
	Link
	Progress
	Question

	count
)

// variants maps a variant name to its glyphs, indexed by Icon.
var variants = map[string][count]string{
	"plain": {"X", "OK", "*", "[m]", "[s]", ">", "#", "~", "...", "?"},
	"emoji": {"💀", "🎉", "🔖", "🔇", "🔊", "📺", "🧩", "🔗", "⏳", "🤨"},
	"nerd": {
		"\U000f0159", "\U000f012c", "\U000f00c0", "\U000f075f", "\U000f057e",
		"\U000f0567", "\U000f0570", "\U000f0337", "\U000f051f", "\U000f02d7",
	},
	"kaomoji": {"(╥﹏╥)", "(ᵔ◡ᵔ)", "(＾▽＾)", "(－_－) zzZ", "♪(´▽｀)", "(⌐■_■)", "(•̀ᴗ•́)و", "(ﾉ◕ヮ◕)ﾉ", "(￣ー￣)", "(・_・ヾ"},
	"squares": {"🟥", "🟩", "🟨", "⬛", "🟦", "🟪", "🔲", "🟫", "🟧", "⬜"},
}

// AvailableVariants returns the variant names, sorted.
func AvailableVariants() []string {
	names := lo.Keys(variants)
	sort.Strings(names)
	return names
}

// Get renders i in the configured variant. Unknown variants and icons render empty.
func Get(i Icon) string {
	glyphs, ok := variants[viper.GetString(key.IconsVariant)]
	if !ok || i < 0 || i >= count {
		return ""
	}
	return glyphs[i]
}
