package pokedex

// Style identifies a FunTranslations translation style.
type Style string

const (
	// StyleYoda is used for cave dwellers and legendary creatures.
	StyleYoda Style = "yoda"

	// StyleShakespeare is used for everything else.
	StyleShakespeare Style = "shakespeare"
)

// SelectStyle picks the translation style for a profile. Cave habitat
// or legendary status routes to Yoda, everything else to Shakespeare.
func SelectStyle(habitat string, isLegendary bool) Style {
	if habitat == "cave" || isLegendary {
		return StyleYoda
	}
	return StyleShakespeare
}
