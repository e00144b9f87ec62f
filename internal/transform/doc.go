// Package transform defines the client interface front ends use to apply
// catalog operations. InProcessClient calls the catalog directly; GRPCClient
// calls a remote prepkit server. Both return the same values for the same
// request, and both report shape errors as preprocess.ErrInvalidArgument.
package transform
