package sales

import "github.com/biter777/countries"

// ShortCategory returns the ISO 3166 alpha-2 code of a country name,
// or name itself when it is not recognized.
func ShortCategory(name string) string {
	code := countries.ByName(name)
	if code == countries.Unknown {
		return name
	}
	return code.Alpha2()
}
