package compare

import (
	"os"

	"github.com/RecoveryAshes/cursofind/internal/utils"
	"github.com/shirou/gopsutil/v3/process"
)

// MemoryProbe 进程内存探针
// 度量包装用它采样比较前后的常驻内存
type MemoryProbe interface {
	// RSS 返回当前进程的常驻内存(字节)
	RSS() (int64, error)
}

// ProcessProbe 基于gopsutil的进程内存探针
type ProcessProbe struct {
	proc *process.Process
}

// NewProcessProbe 创建当前进程的内存探针
// 探针初始化失败时降级为空探针,度量不可用但比较照常进行
func NewProcessProbe() MemoryProbe {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		utils.Warnf("内存探针初始化失败,内存度量降级为0: %v", err)
		return NoopProbe{}
	}
	return &ProcessProbe{proc: proc}
}

// RSS 返回当前进程的常驻内存
func (p *ProcessProbe) RSS() (int64, error) {
	info, err := p.proc.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return int64(info.RSS), nil
}

// NoopProbe 空探针,内存读数恒为0
// 内存度量能力缺失时使用,保证度量失败不阻断打分
type NoopProbe struct{}

// RSS 恒返回0
func (NoopProbe) RSS() (int64, error) {
	return 0, nil
}
