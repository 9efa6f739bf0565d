package stream

// BlobPair holds one path per blob.
type BlobPair [2]string

// Rotation is where the blobs are in the shape cycle: each blob morphs
// from Current to Target.
type Rotation struct {
	Index   int
	Current BlobPair
	Target  BlobPair
}

// NewRotation starts the cycle with the blobs swapping the first two shapes.
func NewRotation(paths []string) Rotation {
	first, second := at(paths, 0), at(paths, 1)
	return Rotation{
		Current: BlobPair{first, second},
		Target:  BlobPair{second, first},
	}
}

// Next moves one step along the cycle: the old targets become the new
// starting points.
func (r Rotation) Next(paths []string) Rotation {
	if len(paths) == 0 {
		return r
	}
	index := r.Index % len(paths)
	next := (index + 1) % len(paths)
	return Rotation{
		Index:   next,
		Current: r.Target,
		Target:  BlobPair{paths[index], paths[next]},
	}
}

func at(paths []string, i int) string {
	if len(paths) == 0 {
		return ""
	}
	return paths[i%len(paths)]
}
