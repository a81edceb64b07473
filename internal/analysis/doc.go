// Package analysis extracts wave properties from a recorded history.
//
//   - [PeakLocation] and [Track]: sub-grid peak position per frame
//   - [Speed]: propagation speed fitted to a peak track
//   - [Spectrum]: wavenumber power spectrum of one field
//   - [ProbeSeries] and [Portrait]: field values at a point over time
//
// # Propagation Speed
//
// The measured speed of an advected pulse should approach c:
//
//	track := analysis.Track(res.Grid.X, res.Frames, 0)
//	v := analysis.Speed(res.Times(), track)
package analysis
