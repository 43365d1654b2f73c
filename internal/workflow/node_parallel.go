package workflow

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ParallelNode 并发执行多个分支节点（如 pairing 场景中的套餐与饮品）
// 只要有一个分支成功就视为成功，失败的分支记录到 Context.BranchErrors；
// 全部失败时返回聚合错误
type ParallelNode struct {
	nodeName string
	children []Node
	limit    int
}

// NewParallelNode 创建一个新的并行节点
func NewParallelNode(name string, children []Node) *ParallelNode {
	return &ParallelNode{
		nodeName: name,
		children: children,
	}
}

// WithLimit 限制同时运行的分支数，<= 0 表示不限制
func (n *ParallelNode) WithLimit(limit int) *ParallelNode {
	n.limit = limit
	return n
}

func (n *ParallelNode) Name() string { return n.nodeName }
func (n *ParallelNode) Type() string { return "parallel" }

func (n *ParallelNode) Execute(ctx *Context) error {
	if len(n.children) == 0 {
		return nil
	}

	var g errgroup.Group
	if n.limit > 0 {
		g.SetLimit(n.limit)
	}

	// 每个分支写自己的槽位，不需要额外加锁
	results := make([]error, len(n.children))
	for i, child := range n.children {
		i, child := i, child
		g.Go(func() error {
			results[i] = runBranch(ctx, child)
			return nil
		})
	}
	_ = g.Wait()

	var failed []error
	for i, err := range results {
		if err != nil {
			failed = append(failed, err)
			ctx.AddBranchError(n.children[i].Name(), err)
		}
	}

	switch {
	case len(failed) == len(n.children):
		return fmt.Errorf("all branches of %s failed: %w", n.nodeName, errors.Join(failed...))
	case len(failed) > 0:
		ctx.AddLog(fmt.Sprintf("%s: %d of %d branches failed, keeping partial result", n.nodeName, len(failed), len(n.children)))
	default:
		ctx.AddLog(fmt.Sprintf("%s: %d branches completed", n.nodeName, len(n.children)))
	}
	return nil
}

func runBranch(ctx *Context, node Node) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("node %s panic: %v", node.Name(), r)
		}
	}()
	if err := node.Execute(ctx); err != nil {
		return fmt.Errorf("node %s: %w", node.Name(), err)
	}
	return nil
}
