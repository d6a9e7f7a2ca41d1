// Package layoutfile loads named wire layouts from YAML or TOML documents.
//
// A document declares a map of layouts. Each layout is exactly one of a
// type alias, a struct field list, a tuple element list or an enum:
//
//	layouts:
//	  slave-state:
//	    enum:
//	      bits: 4
//	      unknown: catch-all
//	      variants:
//	        - {name: init, value: 1}
//	        - {name: op, value: 8}
//	        - {name: other, fallback: true}
//	  al-control:
//	    fields:
//	      - {name: state, type: slave-state}
//	      - {name: error, type: bool}
//	      - {name: id-request, type: bool}
//	      - {type: pad10}
//	  word-pair:
//	    tuple: [be:u16, u16]
//	  channel-map:
//	    type: u8[4]
//
// # Type Expressions
//
//	bool, f32, f64      fixed-width primitives
//	u<N>, i<N>          unsigned / signed integers, N in 1..64
//	pad<N>              N reserved bits
//	<name>              another layout, declared in any order
//	<T>[N]              array of N elements, may repeat: u4[2][3]
//	be:<T>              big-endian byte order for a byte-sized scalar
//
// References resolve lazily; unknown names and reference cycles are
// reported as load-phase InvalidSchema errors naming the layout.
// The resulting Registry is immutable and safe for concurrent use.
package layoutfile
