// Package wire renders Parameter Node trees into the flat, indexed
// declaration format: "param0=config", "paramType0=record",
// "config_param0=config_host" and so on. Records and unions flatten into
// scoped counters so the consuming runtime can rebuild the tree from indices
// alone.
package wire
