// Package model is the structural representation of one C# source file after
// the concrete syntax tree has been lowered by internal/builder.
//
// Every construct is a pointer type implementing the sealed Node interface.
// Nodes are created once and never restructured; the only fields written
// after construction are the resolver-owned ones (Base.Decl and the Target
// fields of TypeRef, Identifier and MemberAccess).
//
// Type declarations and namespaces hold their members already partitioned by
// category (see Members and PartitionMembers) so back ends can render them
// in a canonical order without re-scanning.
package model
