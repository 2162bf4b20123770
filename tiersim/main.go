// Command tiersim simulates processes sharing a cache, a page tier and a
// disk.
package main

import "github.com/sarchlab/tiersim/tiersim/cmd"

func main() {
	cmd.Execute()
}
