// ABOUTME: Waveform display summary
// ABOUTME: Downsamples a buffer into per-column peaks for rendering
package waveform

import "github.com/NetScalerTrainer/audio9/pkg/audio"

// Peak is the amplitude envelope of one display column.
type Peak struct {
	Min int32
	Max int32
}

// Norm returns the column amplitude as a 0..1 fraction of full scale.
func (p Peak) Norm() float64 {
	a := p.Max
	if -p.Min > a {
		a = -p.Min
	}
	if a < 0 {
		a = 0
	}
	return float64(a) / float64(audio.Max24Bit)
}

// Summarize reduces the buffer to columns min/max peaks over channel 0.
// Columns partition the buffer evenly; the last column absorbs the
// remainder frames.
func Summarize(buf *audio.SampleBuffer, columns int) []Peak {
	if columns < 1 {
		return nil
	}
	frames := buf.Frames()
	if int64(columns) > frames {
		columns = int(frames)
	}

	peaks := make([]Peak, columns)
	for c := 0; c < columns; c++ {
		from := int64(c) * frames / int64(columns)
		to := int64(c+1) * frames / int64(columns)
		if c == columns-1 {
			to = frames
		}

		p := Peak{Min: buf.Sample(from, 0), Max: buf.Sample(from, 0)}
		for f := from + 1; f < to; f++ {
			s := buf.Sample(f, 0)
			if s < p.Min {
				p.Min = s
			}
			if s > p.Max {
				p.Max = s
			}
		}
		peaks[c] = p
	}
	return peaks
}
