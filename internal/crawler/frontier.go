package crawler

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// Frontier 待爬URL队列管理器
// 职责: 维护FIFO待爬队列与已访问集合,保证同一URL最多入队一次
type Frontier struct {
	// 待处理URL队列 (FIFO)
	pending []string

	// 已出队URL标记集合
	visited map[string]bool

	// 已入队URL标记集合 (防止重复入队)
	queued map[string]bool

	// 保护以上状态的读写锁
	mu sync.RWMutex

	// 目标域名(用于跨域过滤)
	targetDomain string
}

// NewFrontier 创建队列实例,种子URL依次入队
func NewFrontier(targetDomain string, seeds ...string) *Frontier {
	f := &Frontier{
		pending:      make([]string, 0, 64),
		visited:      make(map[string]bool),
		queued:       make(map[string]bool),
		targetDomain: targetDomain,
	}
	for _, seed := range seeds {
		// 种子入队失败只影响自身,不影响其它种子
		_ = f.Push(seed)
	}
	return f
}

// Push 添加URL到待爬队列
// 检查URL有效性、跨域过滤、已访问检查、重复入队检查
func (f *Frontier) Push(urlStr string) error {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("URL格式无效: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("不支持的协议: %s", parsedURL.Scheme)
	}

	if f.targetDomain != "" && !strings.Contains(parsedURL.Host, f.targetDomain) {
		return fmt.Errorf("跨域链接已过滤: %s (目标域名: %s)", parsedURL.Host, f.targetDomain)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.visited[urlStr] {
		return fmt.Errorf("URL已访问: %s", urlStr)
	}
	if f.queued[urlStr] {
		return fmt.Errorf("URL已在队列中: %s", urlStr)
	}

	f.queued[urlStr] = true
	f.pending = append(f.pending, urlStr)
	return nil
}

// Pop 从队列头部取出下一个待爬URL
// 队列为空时返回false,表示广度优先遍历到达终止状态
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.pending) == 0 {
		return "", false
	}

	urlStr := f.pending[0]
	f.pending = f.pending[1:]
	delete(f.queued, urlStr)
	return urlStr, true
}

// MarkVisited 标记URL为已访问
func (f *Frontier) MarkVisited(urlStr string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visited[urlStr] = true
}

// IsVisited 检查URL是否已访问
func (f *Frontier) IsVisited(urlStr string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.visited[urlStr]
}

// PendingCount 返回当前待处理URL数量
func (f *Frontier) PendingCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.pending)
}

// VisitedCount 返回已访问URL数量
func (f *Frontier) VisitedCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.visited)
}
