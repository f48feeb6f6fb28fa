package processor

type Option func(*ImageProcessor)

func MaxPixels(n int) Option {
	return func(p *ImageProcessor) {
		if n > 0 {
			p.maxPixels = n
		}
	}
}
