package compress

import "github.com/relpub/relpub/internal/artifact"

// Payload is one compressed copy of the artifact, ready for upload
type Payload struct {
	Codec       Codec
	Name        string
	Label       string
	ContentType string
	Data        []byte
}

// Build compresses data with c and names the result after desc
func (r *Registry) Build(desc artifact.Descriptor, c Codec, data []byte) (*Payload, error) {
	compressed, err := r.Compress(data, c)
	if err != nil {
		return nil, err
	}

	return &Payload{
		Codec:       c,
		Name:        desc.FileName(c.Extension()),
		Label:       desc.Label(c.Label()),
		ContentType: c.ContentType(),
		Data:        compressed,
	}, nil
}
