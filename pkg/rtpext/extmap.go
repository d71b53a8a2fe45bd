package rtpext

import (
	"fmt"

	"github.com/pion/sdp/v3"
)

// BindMediaDescription binds IDs to kinds by reading the extmap
// attributes of a SDP media description.
// Attributes with unsupported URIs or with IDs that can't be carried by
// one-byte header extensions are ignored.
func (r *Registry) BindMediaDescription(md *sdp.MediaDescription) error {
	for _, attr := range md.Attributes {
		if attr.Key != "extmap" {
			continue
		}

		var em sdp.ExtMap
		err := em.Unmarshal(attr.Key + ":" + attr.Value)
		if err != nil {
			return fmt.Errorf("invalid extmap '%s': %w", attr.Value, err)
		}

		if em.URI == nil || em.Value < MinID || em.Value > MaxID {
			continue
		}

		k, ok := KindByURI(em.URI.String())
		if !ok {
			continue
		}

		err = r.Register(uint8(em.Value), k)
		if err != nil {
			return err
		}
	}

	return nil
}

// ExtMaps returns the bindings of the registry as SDP extmap attributes.
func (r *Registry) ExtMaps() []sdp.Attribute {
	var ret []sdp.Attribute

	for id := MinID; id <= MaxID; id++ {
		k := r.kinds[id]
		if k == 0 {
			continue
		}

		ret = append(ret, sdp.NewAttribute("extmap", fmt.Sprintf("%d %s", id, k.URI())))
	}

	return ret
}
