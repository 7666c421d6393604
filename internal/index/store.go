package index

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/RecoveryAshes/cursofind/internal/models"
	"github.com/RecoveryAshes/cursofind/internal/utils"
)

// SaveDictionary 将课程字典保存为JSON文件
// 顶层为课程ID到课程记录的映射,词数组按字典序排列
func SaveDictionary(dict models.CourseDictionary, path string) error {
	data, err := json.MarshalIndent(dict, "", "  ")
	if err != nil {
		return fmt.Errorf("字典序列化失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("字典写入失败 [%s]: %w", path, err)
	}
	utils.Infof("📄 课程字典已保存: %s (%d个课程)", path, len(dict))
	return nil
}

// LoadDictionary 从JSON文件加载课程字典
// 记录的ID字段从映射key还原
func LoadDictionary(path string) (models.CourseDictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("字典读取失败 [%s]: %w", path, err)
	}

	dict := make(models.CourseDictionary)
	if err := json.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("字典解析失败 [%s]: %w", path, err)
	}
	for id, course := range dict {
		course.ID = id
	}
	return dict, nil
}

// SavePairs 将(课程ID, 词)配对保存为竖线分隔的CSV文件
// 每行格式: curso_id|palabra,同一配对只出现一次
func SavePairs(dict models.CourseDictionary, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("索引文件创建失败 [%s]: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = '|'

	pairs := dict.Pairs()
	for _, p := range pairs {
		if err := writer.Write([]string{p.CourseID, p.Word}); err != nil {
			return fmt.Errorf("索引写入失败 [%s]: %w", path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("索引写入失败 [%s]: %w", path, err)
	}

	utils.Infof("📄 索引文件已保存: %s (%d条配对)", path, len(pairs))
	return nil
}

// LoadPairs 从CSV文件加载配对并重建倒排索引
func LoadPairs(path string) (InvertedIndex, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("索引文件读取失败 [%s]: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = '|'
	reader.FieldsPerRecord = 2

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("索引文件解析失败 [%s]: %w", path, err)
	}

	idx := make(InvertedIndex)
	for _, rec := range records {
		courseID, word := rec[0], rec[1]
		courses, ok := idx[word]
		if !ok {
			courses = make(map[string]bool)
			idx[word] = courses
		}
		courses[courseID] = true
	}
	return idx, nil
}
