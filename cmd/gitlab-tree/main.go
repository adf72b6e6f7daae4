package main

import "gitlabtree/cmd/gitlab-tree/cmd"

func main() {
	cmd.Execute()
}
