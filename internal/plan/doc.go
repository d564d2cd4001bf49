// Package plan loads resolved build plans.
//
// A build plan is the ordered list of build specs produced by dependency
// resolution: the software package to containerize plus everything it pulls
// in. Only the first entry, the primary build target, feeds recipe
// generation; the rest are rebuilt inside the container by the build tool
// itself.
//
// Example plan file:
//
//	- name: R
//	  version: 3.3.1
//	  toolchain:
//	    name: intel
//	    version: 2017a
//	  osdependencies:
//	    - libX11-devel
//	    - [libibverbs-dev, libibverbs-devel, rdma-core-devel]
package plan
