// Package driver binds a resolved memory map to a bus and hands out
// runtime register accessors.
//
// A Driver is constructed from a memmap.MemoryMap and a regio bus. The
// map is resolved and validated during construction; a map with
// validation errors never binds. From the driver, Block navigates to an
// address block and Register, Array and Group construct accessors on
// demand. Nothing is precomputed per element, so maps with very large
// register arrays bind in constant space.
//
// Driver works over a blocking regio.Bus. CtxDriver is the suspending
// counterpart over a regio.CtxBus; the two are independent types with
// the same shape.
package driver
