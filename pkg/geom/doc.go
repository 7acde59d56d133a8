// Package geom defines the layout axes, alignments and writing systems.
//
// Two vocabularies describe the same two axes:
//
//   - Specific: [Horizontal] and [Vertical], with requested alignments
//     [Left], [Right], [Top], [Bottom] and [Center], as users write them.
//   - Generic: [Primary] (the axis text flows along) and [Secondary] (the
//     axis lines stack along), with alignments [GenStart], [GenCenter] and [GenEnd].
//
// A [LayoutSystem] fixes the direction of both generic axes and maps the
// specific vocabulary onto the generic one through the [Mapping] interface.
// For right-to-left text `left` maps to [GenEnd] of the primary axis.
package geom
