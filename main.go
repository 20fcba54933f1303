package main

import "github.com/lcharlick/beets-metalarchives/pkg/plugins"

func main() {
	plugins.StartPlugin(&MetalArchivesPlugin{})
}
