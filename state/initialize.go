package state

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		// theme screenshot template, expanded with .Title, .Background and
		// .Accent before rasterization
		DefaultScreenshot: []byte(`<svg viewBox="0 0 1200 900" xmlns="http://www.w3.org/2000/svg">
  <title>{{ .Title }}</title>
  <rect x="0" y="0" width="1200" height="900" fill="{{ .Background }}"/>
  <rect x="0" y="0" width="1200" height="96" fill="{{ .Accent }}"/>
  <rect x="64" y="36" width="180" height="24" rx="12" fill="{{ .Background }}" fill-opacity="0.9"/>
  <rect x="812" y="40" width="72" height="16" rx="8" fill="{{ .Background }}" fill-opacity="0.6"/>
  <rect x="912" y="40" width="72" height="16" rx="8" fill="{{ .Background }}" fill-opacity="0.6"/>
  <rect x="1012" y="40" width="124" height="16" rx="8" fill="{{ .Background }}" fill-opacity="0.9"/>
  <rect x="240" y="200" width="720" height="48" rx="8" fill="{{ .Accent }}"/>
  <rect x="320" y="288" width="560" height="20" rx="10" fill="{{ .Accent }}" fill-opacity="0.45"/>
  <rect x="520" y="348" width="160" height="44" rx="22" fill="{{ .Accent }}"/>
  <rect x="96" y="492" width="320" height="240" rx="12" fill="{{ .Accent }}" fill-opacity="0.18"/>
  <rect x="440" y="492" width="320" height="240" rx="12" fill="{{ .Accent }}" fill-opacity="0.18"/>
  <rect x="784" y="492" width="320" height="240" rx="12" fill="{{ .Accent }}" fill-opacity="0.18"/>
  <rect x="128" y="524" width="256" height="16" rx="8" fill="{{ .Accent }}" fill-opacity="0.55"/>
  <rect x="472" y="524" width="256" height="16" rx="8" fill="{{ .Accent }}" fill-opacity="0.55"/>
  <rect x="816" y="524" width="256" height="16" rx="8" fill="{{ .Accent }}" fill-opacity="0.55"/>
  <rect x="0" y="820" width="1200" height="80" fill="{{ .Accent }}" fill-opacity="0.9"/>
</svg>`),
	}
}
