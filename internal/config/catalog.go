package config

import "strings"

// CatalogEntry describes a tracker mediascout knows out of the box.
type CatalogEntry struct {
	Name       string
	Code       string
	DefaultURL string
}

var catalog = []CatalogEntry{
	{Name: "Aither", Code: "ATH", DefaultURL: "https://aither.cc/api/torrents/filter"},
	{Name: "Beyond-HD", Code: "BHD", DefaultURL: "https://beyond-hd.me/api/torrents/filter"},
	{Name: "Blutopia", Code: "BLU", DefaultURL: "https://blutopia.cc/api/torrents/filter"},
	{Name: "FearNoPeer", Code: "FNP", DefaultURL: "https://fearnopeer.com/api/torrents/filter"},
	{Name: "HDBits", Code: "HDB"},
	{Name: "TheLDU", Code: "LDU", DefaultURL: "https://theldu.to/api/torrents/filter"},
	{Name: "L0ST", Code: "LST", DefaultURL: "https://lst.gg/api/torrents/filter"},
	{Name: "OldToons.World", Code: "OTW", DefaultURL: "https://oldtoons.world/api/torrents/filter"},
	{Name: "OnlyEncodes", Code: "OE", DefaultURL: "https://onlyencodes.cc/api/torrents/filter"},
	{Name: "PrivateSilverScreen", Code: "PSS", DefaultURL: "https://privatesilverscreen.cc/api/torrents/filter"},
	{Name: "ReelFliX", Code: "RFX", DefaultURL: "https://reelflix.xyz/api/torrents/filter"},
	{Name: "Upload.cx", Code: "ULCX", DefaultURL: "https://upload.cx/api/torrents/filter"},
}

// Catalog returns the built-in tracker list in display order.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}

// LookupCatalog finds a catalog entry by tracker code, ignoring case.
func LookupCatalog(code string) (CatalogEntry, bool) {
	for _, entry := range catalog {
		if strings.EqualFold(entry.Code, strings.TrimSpace(code)) {
			return entry, true
		}
	}
	return CatalogEntry{}, false
}

// APIKeyEnv is the environment variable holding a tracker's API key.
func APIKeyEnv(code string) string {
	return envPrefix(code) + "_API_KEY"
}

// URLEnv is the environment variable holding a tracker's filter URL.
func URLEnv(code string) string {
	return envPrefix(code) + "_URL"
}

func envPrefix(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	return strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, code)
}
