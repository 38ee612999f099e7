package rebuild

// Option configures a Rebuild call, mirroring mesh.Option's
// functional-options shape.
type Option func(*config)

type config struct {
	percentile    float64
	degenerateEps float64
}

func defaultConfig() config {
	return config{percentile: 0.10, degenerateEps: 1e-12}
}

// WithUVDensityPercentile overrides the default 10th-percentile-from-top
// cutoff used to reduce a submesh's per-triangle uv_density samples to
// one value.
func WithUVDensityPercentile(frac float64) Option {
	return func(c *config) { c.percentile = frac }
}

// WithDegenerateEpsilon overrides the threshold on the world-space
// cross-product magnitude (twice the triangle's area) below which a
// triangle is dropped as degenerate; a triangle whose uv-space
// magnitude does not exceed it contributes no uv_density sample.
func WithDegenerateEpsilon(eps float64) Option {
	return func(c *config) { c.degenerateEps = eps }
}
