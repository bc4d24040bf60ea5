package model

import "errors"

var (
	// ErrInput 上传文件无法解析、为空或所选列没有有效值
	ErrInput = errors.New("input error")
	// ErrRemoteCall 模型接口调用失败（网络、鉴权、限额）
	ErrRemoteCall = errors.New("remote call error")
)
